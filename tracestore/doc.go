// Package tracestore persists solver trace documents.
//
// Store is the interface for writing and reading whole trace documents
// by name. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with atomic writes
//   - Compressed: wraps any Store with zstd or lz4 payload compression
//   - s3.Store: Amazon S3, with an optional DynamoDB run catalog
//   - minio.Store: MinIO and other S3-compatible storage
//
// Save and Load bridge between documents and stores through the codec
// package, so callers never touch raw payload bytes.
package tracestore
