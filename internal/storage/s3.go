package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Options configures an S3Sink
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	// Prefix is prepended to every object key, e.g. "exports/"
	Prefix string
}

// S3Sink uploads artifacts to a bucket on an S3-compatible object store
type S3Sink struct {
	client *minio.Client
	bucket string
	region string
	prefix string
}

// NewS3Sink creates a minio client for opts. No request is made until EnsureBucket or Put.
func NewS3Sink(opts S3Options) (*S3Sink, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, &Error{Name: opts.Bucket, Message: "endpoint and bucket are required"}
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, &Error{Name: opts.Endpoint, Message: fmt.Sprintf("failed to create S3 client for %s", opts.Endpoint), Cause: err}
	}
	return &S3Sink{client: client, bucket: opts.Bucket, region: opts.Region, prefix: opts.Prefix}, nil
}

// EnsureBucket creates the bucket if it does not exist yet
func (s *S3Sink) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return &Error{Name: s.bucket, Message: fmt.Sprintf("failed to check bucket %s", s.bucket), Cause: err}
	}
	if exists {
		return nil
	}

	region := s.region
	if region == "" {
		region = "us-east-1"
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return &Error{Name: s.bucket, Message: fmt.Sprintf("failed to create bucket %s", s.bucket), Cause: err}
	}
	return nil
}

// Put uploads data as object prefix+name
func (s *S3Sink) Put(ctx context.Context, name string, data []byte, contentType string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.prefix+name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return &Error{Name: name, Message: fmt.Sprintf("failed to upload %s", s.Location(name)), Cause: err}
	}
	return nil
}

// Get downloads object prefix+name
func (s *S3Sink) Get(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.prefix+name, minio.GetObjectOptions{})
	if err != nil {
		return nil, &Error{Name: name, Message: fmt.Sprintf("failed to download %s", s.Location(name)), Cause: err}
	}
	defer func() { _ = obj.Close() }()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, &Error{Name: name, Message: fmt.Sprintf("failed to download %s", s.Location(name)), Cause: err}
	}
	return buf.Bytes(), nil
}

// Location returns the s3:// URI of name
func (s *S3Sink) Location(name string) string {
	return fmt.Sprintf("s3://%s/%s%s", s.bucket, s.prefix, name)
}
