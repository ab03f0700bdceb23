// Package s3 implements tracestore.Store on Amazon S3, with an
// optional DynamoDB catalog for indexing runs by study.
package s3
