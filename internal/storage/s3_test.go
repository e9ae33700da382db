package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Storage_PresignedDownloadURL(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "lifttrack-exports",
	})
	require.NoError(t, err)

	link, err := fs.GeneratePresignedDownloadURL(context.Background(), "exports/u1/archive.json", 5*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/lifttrack-exports/exports/u1/archive.json"), u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
}

func TestDisabled(t *testing.T) {
	var fs FileStorage = Disabled{}
	ctx := context.Background()
	assert.ErrorIs(t, fs.PutObject(ctx, "k", "application/json", nil), ErrNotConfigured)
	_, err := fs.GeneratePresignedDownloadURL(ctx, "k", 0)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, fs.DeleteObject(ctx, "k"), ErrNotConfigured)
}
