//go:build integration

package storage

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests require a running S3-compatible server such as MinIO.
// Set TEST_S3_ENDPOINT, TEST_S3_ACCESS_KEY and TEST_S3_SECRET_KEY to run them.
// Example: TEST_S3_ENDPOINT=localhost:9000 TEST_S3_ACCESS_KEY=minioadmin TEST_S3_SECRET_KEY=minioadmin

func getTestSink(t *testing.T) *S3Sink {
	t.Helper()

	endpoint := os.Getenv("TEST_S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("TEST_S3_ENDPOINT not set, skipping integration test")
	}

	sink, err := NewS3Sink(S3Options{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("TEST_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("TEST_S3_SECRET_KEY"),
		Bucket:    "resume-builder-test",
		Prefix:    uuid.NewString() + "-",
	})
	require.NoError(t, err)
	require.NoError(t, sink.EnsureBucket(context.Background()))
	return sink
}

func TestIntegration_S3PutGet(t *testing.T) {
	sink := getTestSink(t)
	ctx := context.Background()

	require.NoError(t, sink.Put(ctx, "resume.json", []byte(`{"basics":{}}`), "application/json"))

	data, err := sink.Get(ctx, "resume.json")
	require.NoError(t, err)
	assert.Equal(t, `{"basics":{}}`, string(data))
}

func TestIntegration_S3EnsureBucketIdempotent(t *testing.T) {
	sink := getTestSink(t)
	assert.NoError(t, sink.EnsureBucket(context.Background()))
}
