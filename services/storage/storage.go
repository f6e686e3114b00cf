package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService using Cloudinary.
type CloudinaryStorageService struct {
	client    *cloudinary.Cloudinary
	cloudName string
}

// NewStorageService creates a new CloudinaryStorageService.
func NewStorageService(client *cloudinary.Cloudinary, cloudName string) *CloudinaryStorageService {
	return &CloudinaryStorageService{client: client, cloudName: cloudName}
}

// UploadFile uploads a local file under destFolder and returns its public ID.
func (s *CloudinaryStorageService) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	base := filepath.Base(localFilePath)
	publicID := strings.TrimSuffix(base, filepath.Ext(base))

	resp, err := s.client.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder:   destFolder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to cloudinary: %w", err)
	}
	return resp.PublicID, nil
}

// DeleteFile removes an asset by its public ID.
func (s *CloudinaryStorageService) DeleteFile(ctx context.Context, publicID string) error {
	_, err := s.client.Admin.DeleteAssets(ctx, admin.DeleteAssetsParams{
		PublicIDs: api.CldAPIArray{publicID},
	})
	if err != nil {
		return fmt.Errorf("failed to delete cloudinary asset %s: %w", publicID, err)
	}
	return nil
}

// GetDownloadURL builds the public delivery URL for an asset.
func (s *CloudinaryStorageService) GetDownloadURL(ctx context.Context, publicID string) (string, error) {
	if publicID == "" {
		return "", fmt.Errorf("publicID is required")
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", s.cloudName, publicID), nil
}
