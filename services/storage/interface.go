package storage

import "context"

// StorageService defines the interface for media storage operations.
// Callers keep the returned public ID; the download URL is derived from it.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetDownloadURL(ctx context.Context, publicID string) (string, error)
}
