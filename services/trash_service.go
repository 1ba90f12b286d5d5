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

// TrashService drives the lifecycle state machine:
// Active -> Trashed -> Purged (terminal), with Trashed -> Active as the
// only other transition. No transition skips a state.
type TrashService struct {
	fileCollection    *mongo.Collection
	folderCollection  *mongo.Collection
	storage           *StorageService
	permissionService *PermissionService
}

// TrashItem is one entry in the trash listing.
type TrashItem struct {
	ID        primitive.ObjectID  `json:"id"`
	Type      models.ResourceType `json:"type"`
	Name      string              `json:"name"`
	Size      int64               `json:"size,omitempty"`
	TrashedAt time.Time           `json:"trashed_at"`
}

func NewTrashService(db *mongo.Database, storage *StorageService, permissionService *PermissionService) *TrashService {
	return &TrashService{
		fileCollection:    db.Collection("files"),
		folderCollection:  db.Collection("folders"),
		storage:           storage,
		permissionService: permissionService,
	}
}

// SoftDelete moves an Active resource to Trashed. Requires owner level.
// Deliberately not idempotent: a second call observes NotFound because
// the resource is no longer Active. A folder's children are NOT
// cascaded; they stay independently active.
func (s *TrashService) SoftDelete(ctx context.Context, resourceType models.ResourceType, resourceID, callerID primitive.ObjectID) error {
	if err := s.permissionService.Authorize(ctx, resourceType, resourceID, callerID, models.LevelOwner); err != nil {
		return err
	}

	coll, err := s.collectionFor(resourceType)
	if err != nil {
		return err
	}

	// trashed_at is the only field touched so that delete+restore is a
	// pure round trip.
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": resourceID, "trashed_at": nil},
		bson.M{"$set": bson.M{"trashed_at": time.Now().UTC()}},
	)
	if err != nil {
		return storeError("soft delete", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("active %s: %w", resourceType, utils.ErrNotFound)
	}

	return nil
}

// Restore moves a Trashed resource back to Active. Restoring an Active
// resource fails NotFound: the trash is the authoritative restore
// source, not an undo of the last delete.
func (s *TrashService) Restore(ctx context.Context, resourceType models.ResourceType, resourceID, callerID primitive.ObjectID) error {
	if err := s.permissionService.Authorize(ctx, resourceType, resourceID, callerID, models.LevelOwner); err != nil {
		return err
	}

	coll, err := s.collectionFor(resourceType)
	if err != nil {
		return err
	}

	if resourceType == models.ResourceTypeFolder {
		if err := s.checkRestoreNameConflict(ctx, resourceID); err != nil {
			return err
		}
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": resourceID, "trashed_at": bson.M{"$ne": nil}},
		bson.M{"$unset": bson.M{"trashed_at": ""}},
	)
	if err != nil {
		return storeError("restore", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("trashed %s: %w", resourceType, utils.ErrNotFound)
	}

	return nil
}

// checkRestoreNameConflict surfaces a Conflict when the folder's name
// was reused by an active sibling while it sat in the trash, instead of
// silently producing a duplicate.
func (s *TrashService) checkRestoreNameConflict(ctx context.Context, folderID primitive.ObjectID) error {
	var folder models.Folder
	err := s.folderCollection.FindOne(ctx, bson.M{"_id": folderID}).Decode(&folder)
	if err == mongo.ErrNoDocuments {
		return fmt.Errorf("trashed folder: %w", utils.ErrNotFound)
	} else if err != nil {
		return storeError("folder lookup", err)
	}

	filter := bson.M{
		"name":       folder.Name,
		"owner_id":   folder.OwnerID,
		"trashed_at": nil,
		"_id":        bson.M{"$ne": folderID},
	}
	if folder.ParentID != nil {
		filter["parent_id"] = *folder.ParentID
	} else {
		filter["parent_id"] = nil
	}

	err = s.folderCollection.FindOne(ctx, filter,
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return fmt.Errorf("folder %q was reused while trashed: %w", folder.Name, utils.ErrConflict)
	}
	if err != mongo.ErrNoDocuments {
		return storeError("restore collision check", err)
	}
	return nil
}

// Purge permanently destroys a Trashed resource: best-effort object
// deletion, then the authoritative row delete, then grant cascade.
// Irreversible once the row is gone. Purging a folder cascades the
// permanent delete through its descendants.
func (s *TrashService) Purge(ctx context.Context, resourceType models.ResourceType, resourceID, callerID primitive.ObjectID) error {
	if err := s.permissionService.Authorize(ctx, resourceType, resourceID, callerID, models.LevelOwner); err != nil {
		return err
	}

	switch resourceType {
	case models.ResourceTypeFile:
		var file models.File
		err := s.fileCollection.FindOne(ctx, bson.M{
			"_id":        resourceID,
			"trashed_at": bson.M{"$ne": nil},
		}).Decode(&file)
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("trashed file: %w", utils.ErrNotFound)
		} else if err != nil {
			return storeError("file lookup", err)
		}
		return s.purgeFileDoc(ctx, &file)

	case models.ResourceTypeFolder:
		var folder models.Folder
		err := s.folderCollection.FindOne(ctx, bson.M{
			"_id":        resourceID,
			"trashed_at": bson.M{"$ne": nil},
		}).Decode(&folder)
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("trashed folder: %w", utils.ErrNotFound)
		} else if err != nil {
			return storeError("folder lookup", err)
		}
		return s.purgeFolderDoc(ctx, &folder)

	default:
		return fmt.Errorf("unknown resource type %q: %w", resourceType, utils.ErrInvalidArgument)
	}
}

// purgeFileDoc deletes the backing object best-effort (the metadata row
// is the source of truth for existence, so an object-store failure is
// logged and not propagated), then deletes the row and cascades grants.
func (s *TrashService) purgeFileDoc(ctx context.Context, file *models.File) error {
	if err := s.storage.Delete(ctx, file.ObjectPath); err != nil {
		utils.LogWarning("purge: object delete failed for " + file.ID.Hex() + ", proceeding with row delete")
	}

	if _, err := s.fileCollection.DeleteOne(ctx, bson.M{"_id": file.ID}); err != nil {
		return storeError("file purge", err)
	}

	s.permissionService.deleteGrantsForResource(ctx, models.ResourceTypeFile, file.ID)
	return nil
}

// purgeFolderDoc removes the folder row and everything beneath it,
// regardless of the descendants' own trash state.
func (s *TrashService) purgeFolderDoc(ctx context.Context, folder *models.Folder) error {
	// Files directly inside.
	fileCursor, err := s.fileCollection.Find(ctx, bson.M{"folder_id": folder.ID})
	if err != nil {
		return storeError("folder purge file scan", err)
	}
	var files []models.File
	if err := fileCursor.All(ctx, &files); err != nil {
		return storeError("folder purge file decode", err)
	}
	for i := range files {
		if err := s.purgeFileDoc(ctx, &files[i]); err != nil {
			return err
		}
	}

	// Child folders, depth-first.
	folderCursor, err := s.folderCollection.Find(ctx, bson.M{"parent_id": folder.ID})
	if err != nil {
		return storeError("folder purge child scan", err)
	}
	var children []models.Folder
	if err := folderCursor.All(ctx, &children); err != nil {
		return storeError("folder purge child decode", err)
	}
	for i := range children {
		if err := s.purgeFolderDoc(ctx, &children[i]); err != nil {
			return err
		}
	}

	if _, err := s.folderCollection.DeleteOne(ctx, bson.M{"_id": folder.ID}); err != nil {
		return storeError("folder purge", err)
	}

	s.permissionService.deleteGrantsForResource(ctx, models.ResourceTypeFolder, folder.ID)
	return nil
}

// ListTrash returns the caller's trashed resources, newest first.
func (s *TrashService) ListTrash(ctx context.Context, ownerID primitive.ObjectID, itemType string, limit, offset int) ([]TrashItem, error) {
	items := []TrashItem{}
	filter := bson.M{
		"owner_id":   ownerID,
		"trashed_at": bson.M{"$ne": nil},
	}
	findOpts := options.Find().
		SetSort(bson.M{"trashed_at": -1}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	if itemType == "" || itemType == "files" {
		cursor, err := s.fileCollection.Find(ctx, filter, findOpts)
		if err != nil {
			return nil, storeError("trash file listing", err)
		}
		var files []models.File
		if err := cursor.All(ctx, &files); err != nil {
			return nil, storeError("trash file decode", err)
		}
		for _, f := range files {
			items = append(items, TrashItem{
				ID:        f.ID,
				Type:      models.ResourceTypeFile,
				Name:      f.Name,
				Size:      f.Size,
				TrashedAt: *f.TrashedAt,
			})
		}
	}

	if itemType == "" || itemType == "folders" {
		cursor, err := s.folderCollection.Find(ctx, filter, findOpts)
		if err != nil {
			return nil, storeError("trash folder listing", err)
		}
		var folders []models.Folder
		if err := cursor.All(ctx, &folders); err != nil {
			return nil, storeError("trash folder decode", err)
		}
		for _, f := range folders {
			items = append(items, TrashItem{
				ID:        f.ID,
				Type:      models.ResourceTypeFolder,
				Name:      f.Name,
				TrashedAt: *f.TrashedAt,
			})
		}
	}

	return items, nil
}

// PurgeExpired permanently deletes resources trashed before the cutoff,
// across all owners. Used by the scheduled cleanup job; errors on
// individual resources are logged and do not stop the sweep.
func (s *TrashService) PurgeExpired(ctx context.Context, cutoff time.Time) (int, error) {
	purged := 0
	expired := bson.M{"trashed_at": bson.M{"$ne": nil, "$lte": cutoff}}

	fileCursor, err := s.fileCollection.Find(ctx, expired)
	if err != nil {
		return purged, storeError("expired file scan", err)
	}
	var files []models.File
	if err := fileCursor.All(ctx, &files); err != nil {
		return purged, storeError("expired file decode", err)
	}
	for i := range files {
		if err := s.purgeFileDoc(ctx, &files[i]); err != nil {
			utils.LogError("auto-purge file "+files[i].ID.Hex(), err)
			continue
		}
		purged++
	}

	folderCursor, err := s.folderCollection.Find(ctx, expired)
	if err != nil {
		return purged, storeError("expired folder scan", err)
	}
	var folders []models.Folder
	if err := folderCursor.All(ctx, &folders); err != nil {
		return purged, storeError("expired folder decode", err)
	}
	for i := range folders {
		if err := s.purgeFolderDoc(ctx, &folders[i]); err != nil {
			utils.LogError("auto-purge folder "+folders[i].ID.Hex(), err)
			continue
		}
		purged++
	}

	return purged, nil
}

func (s *TrashService) collectionFor(resourceType models.ResourceType) (*mongo.Collection, error) {
	switch resourceType {
	case models.ResourceTypeFile:
		return s.fileCollection, nil
	case models.ResourceTypeFolder:
		return s.folderCollection, nil
	default:
		return nil, fmt.Errorf("unknown resource type %q: %w", resourceType, utils.ErrInvalidArgument)
	}
}
