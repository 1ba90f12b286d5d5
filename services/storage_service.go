package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/kurin/blazer/b2"

	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

// StorageService is the object-store collaborator (Backblaze B2).
// Failures are logged here with secrets redacted and surfaced upward
// only as utils.ErrUnavailable.
type StorageService struct {
	client     *b2.Client
	bucketName string
	bucket     *b2.Bucket
}

type URLType string

const (
	URLTypeDownload URLType = "download"
	URLTypePreview  URLType = "preview"
)

const (
	downloadURLTTL = 24 * time.Hour
	previewURLTTL  = 1 * time.Hour

	// PublicURLTTL is the validity of signed URLs minted on the
	// anonymous token-gated path.
	PublicURLTTL = 1 * time.Hour
)

func NewStorageService(ctx context.Context, keyID, applicationKey, bucketName string) (*StorageService, error) {
	client, err := b2.NewClient(ctx, keyID, applicationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create B2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", bucketName, err)
	}

	return &StorageService{
		client:     client,
		bucketName: bucketName,
		bucket:     bucket,
	}, nil
}

// NewObjectPath generates a fresh, globally unique object key for an
// upload. Paths are never reused, even for same-named files.
func (s *StorageService) NewObjectPath(ownerID, filename string) string {
	return fmt.Sprintf("users/%s/%s/%s", ownerID, uuid.NewString(), filename)
}

// Put streams the reader into the object store under objectPath and
// returns the number of bytes written.
func (s *StorageService) Put(ctx context.Context, r io.Reader, objectPath string) (int64, error) {
	obj := s.bucket.Object(objectPath)
	writer := obj.NewWriter(ctx)

	written, err := io.Copy(writer, r)
	if err != nil {
		writer.Close()
		utils.LogCollaboratorError("object store put failed", err)
		return 0, fmt.Errorf("object upload: %w", utils.ErrUnavailable)
	}

	if err := writer.Close(); err != nil {
		utils.LogCollaboratorError("object store writer close failed", err)
		return 0, fmt.Errorf("object upload: %w", utils.ErrUnavailable)
	}

	return written, nil
}

// Delete removes the object. Best-effort at call sites: callers decide
// whether a failure here is fatal.
func (s *StorageService) Delete(ctx context.Context, objectPath string) error {
	if err := s.bucket.Object(objectPath).Delete(ctx); err != nil {
		utils.LogCollaboratorError("object store delete failed", err)
		return fmt.Errorf("object delete: %w", utils.ErrUnavailable)
	}
	return nil
}

// SignedURL mints a time-boxed retrieval URL for the object.
func (s *StorageService) SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error) {
	urlObj, err := s.bucket.Object(objectPath).AuthURL(ctx, ttl, "")
	if err != nil {
		utils.LogCollaboratorError("object store signed URL failed", err)
		return "", fmt.Errorf("signed URL: %w", utils.ErrUnavailable)
	}
	return urlObj.String(), nil
}

// SignedURLForType applies the standard TTL per usage.
func (s *StorageService) SignedURLForType(ctx context.Context, objectPath string, urlType URLType) (string, error) {
	switch urlType {
	case URLTypeDownload:
		return s.SignedURL(ctx, objectPath, downloadURLTTL)
	default:
		return s.SignedURL(ctx, objectPath, previewURLTTL)
	}
}
