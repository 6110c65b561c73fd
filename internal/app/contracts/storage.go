package contracts

import (
	"context"
	"io"
	"time"
)

type StorageObject struct {
	Name         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

type Storage interface {
	UploadObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	GetObjectUrlWithExpiryTime(ctx context.Context, objectName string, expiryTime time.Duration) (string, error)
	ListObjectsByPrefix(ctx context.Context, prefix string) ([]StorageObject, error)
}
