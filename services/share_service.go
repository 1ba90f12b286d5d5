package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hazaribi/google-drive-clone-backend-secure/models"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

// shareTokenBytes gives 128 bits of entropy per token.
const shareTokenBytes = 16

// tokenInsertAttempts bounds the regenerate-and-retry loop on the
// store's uniqueness constraint. With 128-bit tokens a retry should
// never fire in practice.
const tokenInsertAttempts = 3

// ShareService issues and revokes public share links and serves the
// anonymous token-gated access path.
type ShareService struct {
	fileCollection    *mongo.Collection
	storage           *StorageService
	permissionService *PermissionService
	shareBaseURL      string
}

type ShareLink struct {
	FileID primitive.ObjectID `json:"file_id"`
	URL    string             `json:"url"`
}

func NewShareService(db *mongo.Database, storage *StorageService, permissionService *PermissionService, shareBaseURL string) *ShareService {
	return &ShareService{
		fileCollection:    db.Collection("files"),
		storage:           storage,
		permissionService: permissionService,
		shareBaseURL:      shareBaseURL,
	}
}

// IssueLink generates a share token for an active file and returns the
// public URL. Requires owner level. Issuing again replaces any previous
// token.
func (s *ShareService) IssueLink(ctx context.Context, fileID, callerID primitive.ObjectID) (*ShareLink, error) {
	if err := s.permissionService.Authorize(ctx, models.ResourceTypeFile, fileID, callerID, models.LevelOwner); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < tokenInsertAttempts; attempt++ {
		token, err := newShareToken()
		if err != nil {
			return nil, err
		}

		res, err := s.fileCollection.UpdateOne(ctx,
			bson.M{"_id": fileID, "trashed_at": nil},
			bson.M{"$set": bson.M{"share_token": token, "is_public": true}},
		)
		if err != nil {
			if isDuplicateKey(err) {
				// Token collision against the unique index; regenerate.
				lastErr = err
				continue
			}
			return nil, storeError("share token update", err)
		}
		if res.MatchedCount == 0 {
			return nil, fmt.Errorf("active file: %w", utils.ErrNotFound)
		}

		return &ShareLink{
			FileID: fileID,
			URL:    buildShareURL(s.shareBaseURL, token),
		}, nil
	}

	return nil, storeError("share token collision retries exhausted", lastErr)
}

// RevokeLink clears the token and public flag in a single update.
// Afterwards the token behaves identically to one that never existed.
func (s *ShareService) RevokeLink(ctx context.Context, fileID, callerID primitive.ObjectID) error {
	if err := s.permissionService.Authorize(ctx, models.ResourceTypeFile, fileID, callerID, models.LevelOwner); err != nil {
		return err
	}

	res, err := s.fileCollection.UpdateOne(ctx,
		bson.M{"_id": fileID},
		bson.M{"$unset": bson.M{"share_token": ""}, "$set": bson.M{"is_public": false}},
	)
	if err != nil {
		return storeError("share revoke", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("file: %w", utils.ErrNotFound)
	}

	return nil
}

// ResolveToken returns the public-safe projection of the file a token
// points at. Requires the exact token, the public flag, and an active
// file; anything else is NotFound.
func (s *ShareService) ResolveToken(ctx context.Context, token string) (*models.PublicFileView, error) {
	file, err := s.fileByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	view := file.PublicView()
	return &view, nil
}

// PublicDownloadURL mints a short-lived signed retrieval URL through
// the same token-gated path, with no caller authentication.
func (s *ShareService) PublicDownloadURL(ctx context.Context, token string) (string, error) {
	file, err := s.fileByToken(ctx, token)
	if err != nil {
		return "", err
	}
	return s.storage.SignedURL(ctx, file.ObjectPath, PublicURLTTL)
}

func (s *ShareService) fileByToken(ctx context.Context, token string) (*models.File, error) {
	if token == "" {
		return nil, fmt.Errorf("share token: %w", utils.ErrNotFound)
	}

	var file models.File
	err := s.fileCollection.FindOne(ctx, bson.M{
		"share_token": token,
		"is_public":   true,
		"trashed_at":  nil,
	}).Decode(&file)

	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("share token: %w", utils.ErrNotFound)
	} else if err != nil {
		return nil, storeError("share token lookup", err)
	}

	return &file, nil
}

// newShareToken draws 128 bits from the CSPRNG, hex encoded.
func newShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		utils.LogCollaboratorError("share token generation", err)
		return "", fmt.Errorf("token generation: %w", utils.ErrUnavailable)
	}
	return hex.EncodeToString(buf), nil
}

// buildShareURL concatenates the configured base URL with the
// percent-encoded token.
func buildShareURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(token)
}
