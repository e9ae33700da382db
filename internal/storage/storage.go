package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrNotConfigured is returned by Disabled when no bucket is set up.
var ErrNotConfigured = errors.New("object storage is not configured")

//go:generate mockgen -source=storage.go -destination=../service/storage_mocks_test.go -package=service_test

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// PutObject uploads body under objectKey, replacing any existing object.
	PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// Disabled is the FileStorage used when no bucket is configured.
type Disabled struct{}

func (Disabled) PutObject(context.Context, string, string, []byte) error {
	return ErrNotConfigured
}

func (Disabled) GeneratePresignedDownloadURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) DeleteObject(context.Context, string) error {
	return ErrNotConfigured
}
