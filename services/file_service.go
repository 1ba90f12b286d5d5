package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hazaribi/google-drive-clone-backend-secure/models"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

type FileService struct {
	fileCollection       *mongo.Collection
	permissionCollection *mongo.Collection
	storage              *StorageService
	permissionService    *PermissionService
}

type FileUploadRequest struct {
	Content  io.Reader
	Filename string
	MimeType string
	Size     int64
	FolderID *primitive.ObjectID
}

func NewFileService(db *mongo.Database, storage *StorageService, permissionService *PermissionService) *FileService {
	return &FileService{
		fileCollection:       db.Collection("files"),
		permissionCollection: db.Collection("permissions"),
		storage:              storage,
		permissionService:    permissionService,
	}
}

// UploadFile is the two-phase upload: (1) stream the content into the
// object store under a fresh unique path, (2) insert the metadata row.
// If (2) fails the object written in (1) is deleted before the error
// surfaces, so no orphaned storage is left behind. Once (2) succeeds
// the upload is durably complete; later bookkeeping failures are
// logged, never propagated.
func (s *FileService) UploadFile(ctx context.Context, ownerID primitive.ObjectID, req FileUploadRequest) (*models.File, error) {
	name, err := utils.ValidateResourceName(req.Filename)
	if err != nil {
		return nil, err
	}

	if req.FolderID != nil {
		if err := s.requireActiveFolderMembership(ctx, *req.FolderID, ownerID); err != nil {
			return nil, err
		}
	}

	objectPath := s.storage.NewObjectPath(ownerID.Hex(), name)
	written, err := s.storage.Put(ctx, req.Content, objectPath)
	if err != nil {
		return nil, err
	}

	size := req.Size
	if size <= 0 {
		size = written
	}

	now := time.Now().UTC()
	file := models.File{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Size:       size,
		MimeType:   s.resolveMimeType(name, req.MimeType),
		FolderID:   req.FolderID,
		OwnerID:    ownerID,
		ObjectPath: objectPath,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.fileCollection.InsertOne(ctx, file); err != nil {
		// Compensation: remove the orphaned object. Its own failure is
		// logged and must not mask the insert error.
		if delErr := s.storage.Delete(ctx, objectPath); delErr != nil {
			utils.LogError("orphan cleanup after failed insert", delErr)
		}
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("file %q already exists: %w", name, utils.ErrConflict)
		}
		return nil, storeError("file insert", err)
	}

	// Redundant convenience record of the owner's implicit access.
	// Non-authoritative; the resolver never needs it, so a failure to
	// write it is non-fatal.
	s.writeOwnerGrant(ctx, file.ID, ownerID)

	return &file, nil
}

func (s *FileService) writeOwnerGrant(ctx context.Context, fileID, ownerID primitive.ObjectID) {
	grant := models.Permission{
		ID:           primitive.NewObjectID(),
		UserID:       ownerID,
		ResourceID:   fileID,
		ResourceType: models.ResourceTypeFile,
		Level:        models.LevelOwner,
		GrantedBy:    ownerID,
		GrantedAt:    time.Now().UTC(),
	}
	if _, err := s.permissionCollection.InsertOne(ctx, grant); err != nil {
		utils.LogWarning("failed to write convenience owner grant: " + utils.RedactSecrets(err.Error()))
	}
}

// GetFile returns an active file the caller can view.
func (s *FileService) GetFile(ctx context.Context, fileID, callerID primitive.ObjectID) (*models.File, error) {
	if err := s.permissionService.Authorize(ctx, models.ResourceTypeFile, fileID, callerID, models.LevelView); err != nil {
		return nil, err
	}
	return s.activeFile(ctx, fileID)
}

// RenameFile requires edit level and an active file.
func (s *FileService) RenameFile(ctx context.Context, fileID primitive.ObjectID, name string, callerID primitive.ObjectID) (*models.File, error) {
	name, err := utils.ValidateResourceName(name)
	if err != nil {
		return nil, err
	}

	if err := s.permissionService.Authorize(ctx, models.ResourceTypeFile, fileID, callerID, models.LevelEdit); err != nil {
		return nil, err
	}

	var updated models.File
	err = s.fileCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": fileID, "trashed_at": nil},
		bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)

	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("file: %w", utils.ErrNotFound)
	} else if err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("file %q already exists: %w", name, utils.ErrConflict)
		}
		return nil, storeError("file rename", err)
	}

	return &updated, nil
}

// DownloadURL mints a signed retrieval URL for a caller with view
// access.
func (s *FileService) DownloadURL(ctx context.Context, fileID, callerID primitive.ObjectID, urlType URLType) (string, error) {
	file, err := s.GetFile(ctx, fileID, callerID)
	if err != nil {
		return "", err
	}
	return s.storage.SignedURLForType(ctx, file.ObjectPath, urlType)
}

// ListFiles is owner-only, active-only, optionally filtered to one
// folder (nil folder = root level when folderSet).
func (s *FileService) ListFiles(ctx context.Context, ownerID primitive.ObjectID, folderID *primitive.ObjectID, folderSet bool) ([]models.File, error) {
	filter := bson.M{
		"owner_id":   ownerID,
		"trashed_at": nil,
	}
	if folderSet {
		if folderID != nil {
			filter["folder_id"] = *folderID
		} else {
			filter["folder_id"] = nil
		}
	}

	cursor, err := s.fileCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, storeError("file listing", err)
	}
	defer cursor.Close(ctx)

	files := []models.File{}
	if err = cursor.All(ctx, &files); err != nil {
		return nil, storeError("file decode", err)
	}

	return files, nil
}

func (s *FileService) activeFile(ctx context.Context, fileID primitive.ObjectID) (*models.File, error) {
	var file models.File
	err := s.fileCollection.FindOne(ctx, bson.M{
		"_id":        fileID,
		"trashed_at": nil,
	}).Decode(&file)

	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("file: %w", utils.ErrNotFound)
	} else if err != nil {
		return nil, storeError("file lookup", err)
	}

	return &file, nil
}

// requireActiveFolderMembership checks the target folder exists, is
// active, and the caller may place files into it.
func (s *FileService) requireActiveFolderMembership(ctx context.Context, folderID, callerID primitive.ObjectID) error {
	err := s.fileCollection.Database().Collection("folders").FindOne(ctx, bson.M{
		"_id":        folderID,
		"trashed_at": nil,
	}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()

	if err == mongo.ErrNoDocuments {
		return fmt.Errorf("folder: %w", utils.ErrNotFound)
	} else if err != nil {
		return storeError("folder lookup", err)
	}

	return s.permissionService.Authorize(ctx, models.ResourceTypeFolder, folderID, callerID, models.LevelEdit)
}

func (s *FileService) resolveMimeType(filename, declared string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
