package tracestore

import (
	"context"
	"fmt"

	"github.com/precisionlens/cascade/codec"
)

// Save encodes doc with the codec and writes it under name.
func Save(ctx context.Context, s Store, c codec.Codec, name string, doc any) error {
	data, err := c.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %q: %w", name, err)
	}
	return s.Put(ctx, name, data)
}

// Load reads the document under name and decodes it into out.
func Load(ctx context.Context, s Store, c codec.Codec, name string, out any) error {
	data, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := c.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %q: %w", name, err)
	}
	return nil
}
