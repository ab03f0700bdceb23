package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precisionlens/cascade/tracestore"
)

// fakeS3 is an in-memory S3 for testing. Only the single-part upload
// path is implemented; trace documents never reach multipart sizes in
// tests.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*params.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var contents []types.Object
	for key := range f.objects {
		if params.Prefix == nil || strings.HasPrefix(key, *params.Prefix) {
			contents = append(contents, types.Object{Key: aws.String(key)})
		}
	}
	return &s3.ListObjectsV2Output{Contents: contents, IsTruncated: aws.Bool(false)}, nil
}

func (f *fakeS3) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported in fake")
}

func (f *fakeS3) UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errors.New("multipart not supported in fake")
}

func (f *fakeS3) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported in fake")
}

func (f *fakeS3) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported in fake")
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := NewStore(fake, "traces", "studies")

	data := []byte(`{"metadata":{}}`)
	require.NoError(t, store.Put(ctx, "fp64_cond10_n50.json", data))

	// Prefixed key inside the bucket.
	assert.Contains(t, fake.objects, "studies/fp64_cond10_n50.json")

	got, err := store.Get(ctx, "fp64_cond10_n50.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore(newFakeS3(), "traces", "")

	_, err := store.Get(context.Background(), "nope.json")
	assert.ErrorIs(t, err, tracestore.ErrNotFound)
}

func TestStore_ListStripsPrefix(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := NewStore(fake, "traces", "studies")

	require.NoError(t, store.Put(ctx, "a/fp8_cond10_n50.json", []byte("1")))
	require.NoError(t, store.Put(ctx, "a/fp64_cond10_n50.json", []byte("2")))
	require.NoError(t, store.Put(ctx, "b/fp64_cond10_n50.json", []byte("3")))

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/fp64_cond10_n50.json", "a/fp8_cond10_n50.json"}, names)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := NewStore(fake, "traces", "")

	require.NoError(t, store.Put(ctx, "x.json", []byte("1")))
	require.NoError(t, store.Delete(ctx, "x.json"))
	require.NoError(t, store.Delete(ctx, "x.json"), "delete is idempotent")

	_, err := store.Get(ctx, "x.json")
	assert.ErrorIs(t, err, tracestore.ErrNotFound)
}
