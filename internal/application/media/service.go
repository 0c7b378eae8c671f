// Package media hands out presigned URLs for uploaded images. Files never
// pass through the API server; the client uploads straight to object
// storage and stores the resulting key on the owning aggregate.
package media

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/shared"
)

// AllowedImageTypes is the whitelist for uploads. SVG is excluded because
// it can carry scripts.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AllowedKinds maps an upload kind to its storage key prefix. The kind
// doubles as a folder so operators can apply per-prefix lifecycle rules.
var AllowedKinds = map[string]bool{
	"alumni-photo":   true,
	"product-image":  true,
	"store-logo":     true,
	"post-cover":     true,
	"program-banner": true,
	"event-banner":   true,
}

// ObjectStorage is implemented by the infrastructure layer (S3 or the
// development stub).
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ServiceConfig holds URL lifetimes.
type ServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultServiceConfig returns the default URL lifetimes.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// Service issues presigned upload and download URLs.
type Service struct {
	storage ObjectStorage
	config  ServiceConfig
}

// NewService creates a media Service with default URL lifetimes.
func NewService(storage ObjectStorage) *Service {
	return &Service{storage: storage, config: DefaultServiceConfig()}
}

// SetConfig overrides the URL lifetimes.
func (s *Service) SetConfig(config ServiceConfig) {
	s.config = config
}

// InitiateUpload validates the request and returns a presigned PUT URL.
// The storage key is server-generated so clients cannot overwrite other
// objects.
func (s *Service) InitiateUpload(ctx context.Context, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	if !AllowedKinds[req.Kind] {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown upload kind '"+req.Kind+"'")
	}
	if !AllowedImageTypes[req.ContentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type '"+req.ContentType+"' is not allowed")
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	if !extensionMatches(ext, req.ContentType) {
		return nil, shared.NewDomainError("EXTENSION_MISMATCH", "File extension does not match content type")
	}

	storageKey := req.Kind + "/" + uuid.New().String() + ext

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Could not generate upload URL")
	}

	return &InitiateUploadResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// GetDownloadURL returns a presigned read URL for an existing object.
func (s *Service) GetDownloadURL(ctx context.Context, storageKey string) (*DownloadURLResponse, error) {
	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	downloadURL, expiresAt, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Could not generate download URL")
	}

	return &DownloadURLResponse{DownloadURL: downloadURL, ExpiresAt: expiresAt}, nil
}

// Delete removes an uploaded object. Callers clear the key from the
// owning aggregate first so a failed delete never leaves a dangling
// reference.
func (s *Service) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return shared.NewDomainError("INVALID_KEY", "Storage key cannot be empty")
	}
	return s.storage.DeleteObject(ctx, storageKey)
}

func extensionMatches(ext, contentType string) bool {
	switch contentType {
	case "image/jpeg":
		return ext == ".jpg" || ext == ".jpeg"
	case "image/png":
		return ext == ".png"
	case "image/gif":
		return ext == ".gif"
	case "image/webp":
		return ext == ".webp"
	}
	return false
}
