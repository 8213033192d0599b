package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService uploads license and ID documents. Only the returned URL is
// stored; file contents are never inspected.
type StorageService interface {
	UploadDocument(ctx context.Context, file multipart.File, destFolder string) (string, error)
	DeleteDocument(ctx context.Context, publicID string) error
}

// CloudinaryStorage is the Cloudinary-backed StorageService.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage builds the storage service from credentials.
func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

// UploadDocument pushes the file into destFolder and returns its secure URL.
func (s *CloudinaryStorage) UploadDocument(ctx context.Context, file multipart.File, destFolder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("no URL returned for uploaded document")
	}
	return result.SecureURL, nil
}

// DeleteDocument removes a previously uploaded document by public ID.
func (s *CloudinaryStorage) DeleteDocument(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
