package tracestore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor compresses and decompresses document payloads.
type Compressor interface {
	// Name is the file extension appended to document names, without
	// the dot.
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Compressed wraps a Store and compresses payloads on the way in.
// Document names gain the compressor's extension, so a store can hold
// compressed and plain documents side by side.
type Compressed struct {
	inner Store
	comp  Compressor
}

// NewCompressed wraps inner with the given compressor.
func NewCompressed(inner Store, comp Compressor) *Compressed {
	return &Compressed{inner: inner, comp: comp}
}

func (c *Compressed) name(name string) string {
	return name + "." + c.comp.Name()
}

func (c *Compressed) Put(ctx context.Context, name string, data []byte) error {
	cp, err := c.comp.Compress(data)
	if err != nil {
		return fmt.Errorf("compress %q: %w", name, err)
	}
	return c.inner.Put(ctx, c.name(name), cp)
}

func (c *Compressed) Get(ctx context.Context, name string) ([]byte, error) {
	cp, err := c.inner.Get(ctx, c.name(name))
	if err != nil {
		return nil, err
	}
	data, err := c.comp.Decompress(cp)
	if err != nil {
		return nil, fmt.Errorf("decompress %q: %w", name, err)
	}
	return data, nil
}

// List reports the logical names, with the compressor extension
// stripped. Documents written by other compressors are skipped.
func (c *Compressed) List(ctx context.Context, prefix string) ([]string, error) {
	ext := "." + c.comp.Name()
	raw, err := c.inner.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, n := range raw {
		if len(n) > len(ext) && n[len(n)-len(ext):] == ext {
			names = append(names, n[:len(n)-len(ext)])
		}
	}
	return names, nil
}

func (c *Compressed) Delete(ctx context.Context, name string) error {
	return c.inner.Delete(ctx, c.name(name))
}

// Zstd is a Compressor backed by klauspost zstd. The zero value is not
// usable; create one with NewZstd.
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewZstd creates a zstd compressor with shared, concurrency-safe
// encoder and decoder instances.
func NewZstd() (*Zstd, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &Zstd{enc: enc, dec: dec}, nil
}

func (z *Zstd) Name() string { return "zst" }

func (z *Zstd) Compress(data []byte) ([]byte, error) {
	return z.enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func (z *Zstd) Decompress(data []byte) ([]byte, error) {
	return z.dec.DecodeAll(data, nil)
}

// LZ4 is a Compressor backed by the lz4 frame format.
type LZ4 struct{}

func (LZ4) Name() string { return "lz4" }

func (LZ4) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (LZ4) Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	return io.ReadAll(r)
}
