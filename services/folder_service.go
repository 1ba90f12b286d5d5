package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hazaribi/google-drive-clone-backend-secure/models"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

type FolderService struct {
	folderCollection  *mongo.Collection
	fileCollection    *mongo.Collection
	permissionService *PermissionService
}

func NewFolderService(db *mongo.Database, permissionService *PermissionService) *FolderService {
	return &FolderService{
		folderCollection:  db.Collection("folders"),
		fileCollection:    db.Collection("files"),
		permissionService: permissionService,
	}
}

// CreateFolder inserts a new active folder owned by the caller. The
// (owner, parent, name) collision check considers active siblings only;
// trashed siblings do not block a name.
func (s *FolderService) CreateFolder(ctx context.Context, name string, parentID *primitive.ObjectID, ownerID primitive.ObjectID) (*models.Folder, error) {
	name, err := utils.ValidateResourceName(name)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		if err := s.requireActiveFolder(ctx, *parentID); err != nil {
			return nil, fmt.Errorf("parent %w", err)
		}
		if err := s.permissionService.Authorize(ctx, models.ResourceTypeFolder, *parentID, ownerID, models.LevelEdit); err != nil {
			return nil, err
		}
	}

	if err := s.checkSiblingName(ctx, ownerID, parentID, name, primitive.NilObjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	folder := models.Folder{
		ID:        primitive.NewObjectID(),
		Name:      name,
		OwnerID:   ownerID,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.folderCollection.InsertOne(ctx, folder); err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("folder %q already exists here: %w", name, utils.ErrConflict)
		}
		return nil, storeError("folder insert", err)
	}

	return &folder, nil
}

// RenameFolder requires edit level and an active folder.
func (s *FolderService) RenameFolder(ctx context.Context, folderID primitive.ObjectID, name string, callerID primitive.ObjectID) (*models.Folder, error) {
	name, err := utils.ValidateResourceName(name)
	if err != nil {
		return nil, err
	}

	if err := s.permissionService.Authorize(ctx, models.ResourceTypeFolder, folderID, callerID, models.LevelEdit); err != nil {
		return nil, err
	}

	folder, err := s.activeFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if err := s.checkSiblingName(ctx, folder.OwnerID, folder.ParentID, name, folderID); err != nil {
		return nil, err
	}

	var updated models.Folder
	err = s.folderCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": folderID, "trashed_at": nil},
		bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)

	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("folder: %w", utils.ErrNotFound)
	} else if err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("folder %q already exists here: %w", name, utils.ErrConflict)
		}
		return nil, storeError("folder rename", err)
	}

	return &updated, nil
}

// GetFolder returns an active folder the caller can view.
func (s *FolderService) GetFolder(ctx context.Context, folderID, callerID primitive.ObjectID) (*models.Folder, error) {
	if err := s.permissionService.Authorize(ctx, models.ResourceTypeFolder, folderID, callerID, models.LevelView); err != nil {
		return nil, err
	}
	return s.activeFolder(ctx, folderID)
}

// ListFolders is owner-only: resources the caller merely holds a grant
// on are reachable via lookup, download and search, never enumeration.
// parentID filters to one parent when parentSet is true (nil parent =
// root level).
func (s *FolderService) ListFolders(ctx context.Context, ownerID primitive.ObjectID, parentID *primitive.ObjectID, parentSet bool) ([]models.Folder, error) {
	filter := bson.M{
		"owner_id":   ownerID,
		"trashed_at": nil,
	}
	if parentSet {
		if parentID != nil {
			filter["parent_id"] = *parentID
		} else {
			filter["parent_id"] = nil
		}
	}

	cursor, err := s.folderCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, storeError("folder listing", err)
	}
	defer cursor.Close(ctx)

	folders := []models.Folder{}
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, storeError("folder decode", err)
	}

	return folders, nil
}

func (s *FolderService) activeFolder(ctx context.Context, folderID primitive.ObjectID) (*models.Folder, error) {
	var folder models.Folder
	err := s.folderCollection.FindOne(ctx, bson.M{
		"_id":        folderID,
		"trashed_at": nil,
	}).Decode(&folder)

	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("folder: %w", utils.ErrNotFound)
	} else if err != nil {
		return nil, storeError("folder lookup", err)
	}

	return &folder, nil
}

func (s *FolderService) requireActiveFolder(ctx context.Context, folderID primitive.ObjectID) error {
	_, err := s.activeFolder(ctx, folderID)
	return err
}

// checkSiblingName rejects a name already used by another active folder
// under the same (owner, parent). excludeID skips the folder being
// renamed.
func (s *FolderService) checkSiblingName(ctx context.Context, ownerID primitive.ObjectID, parentID *primitive.ObjectID, name string, excludeID primitive.ObjectID) error {
	filter := bson.M{
		"name":       name,
		"owner_id":   ownerID,
		"trashed_at": nil,
	}
	if parentID != nil {
		filter["parent_id"] = *parentID
	} else {
		filter["parent_id"] = nil
	}
	if excludeID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	err := s.folderCollection.FindOne(ctx, filter,
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return fmt.Errorf("folder %q already exists here: %w", name, utils.ErrConflict)
	}
	if err != mongo.ErrNoDocuments {
		return storeError("folder collision check", err)
	}
	return nil
}
