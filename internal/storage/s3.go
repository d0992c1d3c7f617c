// Package storage uploads encoded datasets to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"spectrum-sync/internal/config"
	"spectrum-sync/internal/domain"
)

// Compile-time check.
var _ domain.DatasetWriter = (*S3Writer)(nil)

// objectPutter is the slice of the S3 client the writer needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Writer encodes Arrow records as Parquet and uploads them. It uses
// the AWS SDK v2, configured with path-style addressing when a custom
// endpoint is set.
type S3Writer struct {
	client objectPutter
}

// NewS3Writer creates a writer from static credentials. A custom
// endpoint switches the client to path-style URLs for S3-compatible
// stores; without one the SDK resolves the regional AWS endpoint.
func NewS3Writer(cfg *config.Config) (*S3Writer, error) {
	if !cfg.HasS3Config() {
		return nil, fmt.Errorf("S3 config is incomplete")
	}

	opts := s3.Options{
		Region: *cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			*cfg.S3KeyID, *cfg.S3Secret, "",
		),
	}
	if cfg.S3Endpoint != nil {
		opts.BaseEndpoint = aws.String(fmt.Sprintf("https://%s", *cfg.S3Endpoint))
		opts.UsePathStyle = true
	}

	return &S3Writer{client: s3.New(opts)}, nil
}

// Write encodes the record as Snappy-compressed Parquet and uploads it
// to the given "s3://bucket/key" location.
func (w *S3Writer) Write(ctx context.Context, rec arrow.Record, location string) error {
	bucket, key, err := parseS3Path(location)
	if err != nil {
		return err
	}

	data, err := encodeParquet(rec)
	if err != nil {
		return fmt.Errorf("encode dataset for %q: %w", location, err)
	}

	_, err = w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", location, err)
	}
	return nil
}

// parseS3Path extracts bucket and key from an "s3://bucket/path/to/file" URI.
func parseS3Path(s3Path string) (bucket, key string, err error) {
	u, err := url.Parse(s3Path)
	if err != nil {
		return "", "", fmt.Errorf("parse S3 path %q: %w", s3Path, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("expected s3:// scheme, got %q in %q", u.Scheme, s3Path)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("empty key in S3 path %q", s3Path)
	}
	return bucket, key, nil
}
