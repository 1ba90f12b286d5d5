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

// PermissionService decides access given ownership and grant state, and
// manages the grant rows themselves. Access is resource-local: a grant
// on a folder says nothing about its children or the files inside it.
type PermissionService struct {
	fileCollection       *mongo.Collection
	folderCollection     *mongo.Collection
	permissionCollection *mongo.Collection
	userCollection       *mongo.Collection
}

func NewPermissionService(db *mongo.Database) *PermissionService {
	return &PermissionService{
		fileCollection:       db.Collection("files"),
		folderCollection:     db.Collection("folders"),
		permissionCollection: db.Collection("permissions"),
		userCollection:       db.Collection("users"),
	}
}

// Authorize allows the operation iff the caller owns the resource or
// holds a grant at or above the required level. A missing resource and
// a missing grant produce the same ErrAccessDenied so that non-owners
// cannot distinguish "does not exist" from "not mine".
func (s *PermissionService) Authorize(ctx context.Context, resourceType models.ResourceType, resourceID, callerID primitive.ObjectID, required models.PermissionLevel) error {
	ownerID, err := s.resourceOwner(ctx, resourceType, resourceID)
	if err != nil {
		return err
	}

	if ownerID == callerID {
		// Ownership implies the maximum level.
		return nil
	}

	var grant models.Permission
	err = s.permissionCollection.FindOne(ctx, bson.M{
		"user_id":       callerID,
		"resource_id":   resourceID,
		"resource_type": resourceType,
	}).Decode(&grant)

	if err == mongo.ErrNoDocuments {
		return fmt.Errorf("no grant on %s: %w", resourceType, utils.ErrAccessDenied)
	} else if err != nil {
		return storeError("grant lookup", err)
	}

	if !grant.Level.Covers(required) {
		return fmt.Errorf("%s level does not cover %s: %w", grant.Level, required, utils.ErrInsufficientPermission)
	}

	return nil
}

// resourceOwner loads the owner regardless of trash state; lifecycle
// checks are the caller's concern.
func (s *PermissionService) resourceOwner(ctx context.Context, resourceType models.ResourceType, resourceID primitive.ObjectID) (primitive.ObjectID, error) {
	var coll *mongo.Collection
	switch resourceType {
	case models.ResourceTypeFile:
		coll = s.fileCollection
	case models.ResourceTypeFolder:
		coll = s.folderCollection
	default:
		return primitive.NilObjectID, fmt.Errorf("unknown resource type %q: %w", resourceType, utils.ErrInvalidArgument)
	}

	var doc struct {
		OwnerID primitive.ObjectID `bson:"owner_id"`
	}
	err := coll.FindOne(ctx, bson.M{"_id": resourceID},
		options.FindOne().SetProjection(bson.M{"owner_id": 1})).Decode(&doc)

	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, fmt.Errorf("%s lookup: %w", resourceType, utils.ErrAccessDenied)
	} else if err != nil {
		return primitive.NilObjectID, storeError("resource lookup", err)
	}

	return doc.OwnerID, nil
}

// Grant creates or overwrites a delegated grant. Requires owner level
// on the resource. Granting to the resource owner is rejected: the
// owner's access is implicit and never represented as a row.
func (s *PermissionService) Grant(ctx context.Context, resourceType models.ResourceType, resourceID, granteeID primitive.ObjectID, level models.PermissionLevel, callerID primitive.ObjectID) (*models.Permission, error) {
	if err := s.Authorize(ctx, resourceType, resourceID, callerID, models.LevelOwner); err != nil {
		return nil, err
	}

	ownerID, err := s.resourceOwner(ctx, resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	if granteeID == ownerID {
		return nil, fmt.Errorf("owner access is implicit: %w", utils.ErrInvalidArgument)
	}

	err = s.userCollection.FindOne(ctx, bson.M{"_id": granteeID}).Err()
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("grantee user: %w", utils.ErrNotFound)
	} else if err != nil {
		return nil, storeError("grantee lookup", err)
	}

	now := time.Now().UTC()
	filter := bson.M{
		"user_id":       granteeID,
		"resource_id":   resourceID,
		"resource_type": resourceType,
	}
	update := bson.M{
		"$set": bson.M{
			"level":      level,
			"granted_by": callerID,
			"granted_at": now,
		},
		"$setOnInsert": filter,
	}

	var grant models.Permission
	err = s.permissionCollection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Decode(&grant)
	if err != nil {
		if isDuplicateKey(err) {
			// Concurrent upsert of the same grant; the row exists now.
			return nil, fmt.Errorf("grant already exists: %w", utils.ErrConflict)
		}
		return nil, storeError("grant upsert", err)
	}

	return &grant, nil
}

// Revoke deletes a grant. Requires owner level on the resource.
func (s *PermissionService) Revoke(ctx context.Context, resourceType models.ResourceType, resourceID, granteeID primitive.ObjectID, callerID primitive.ObjectID) error {
	if err := s.Authorize(ctx, resourceType, resourceID, callerID, models.LevelOwner); err != nil {
		return err
	}

	res, err := s.permissionCollection.DeleteOne(ctx, bson.M{
		"user_id":       granteeID,
		"resource_id":   resourceID,
		"resource_type": resourceType,
	})
	if err != nil {
		return storeError("grant delete", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("grant: %w", utils.ErrNotFound)
	}

	return nil
}

// ListGrants returns the grants on a resource. Requires owner level.
func (s *PermissionService) ListGrants(ctx context.Context, resourceType models.ResourceType, resourceID, callerID primitive.ObjectID) ([]models.Permission, error) {
	if err := s.Authorize(ctx, resourceType, resourceID, callerID, models.LevelOwner); err != nil {
		return nil, err
	}

	cursor, err := s.permissionCollection.Find(ctx, bson.M{
		"resource_id":   resourceID,
		"resource_type": resourceType,
	}, options.Find().SetSort(bson.M{"granted_at": -1}))
	if err != nil {
		return nil, storeError("grant listing", err)
	}
	defer cursor.Close(ctx)

	grants := []models.Permission{}
	if err = cursor.All(ctx, &grants); err != nil {
		return nil, storeError("grant decode", err)
	}

	return grants, nil
}

// UserByEmail resolves a grant target by email.
func (s *PermissionService) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("user with email %s: %w", email, utils.ErrNotFound)
	} else if err != nil {
		return nil, storeError("user lookup", err)
	}
	return &user, nil
}

// grantedResourceIDs lists the resources of one kind the user holds any
// grant on. Used to scope basic search.
func (s *PermissionService) grantedResourceIDs(ctx context.Context, userID primitive.ObjectID, resourceType models.ResourceType) ([]primitive.ObjectID, error) {
	cursor, err := s.permissionCollection.Find(ctx, bson.M{
		"user_id":       userID,
		"resource_type": resourceType,
	}, options.Find().SetProjection(bson.M{"resource_id": 1}))
	if err != nil {
		return nil, storeError("grant scope lookup", err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var row struct {
			ResourceID primitive.ObjectID `bson:"resource_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			// A skipped row would silently shrink the caller's search
			// visibility, so a decode failure is fatal here.
			return nil, storeError("grant scope decode", err)
		}
		ids = append(ids, row.ResourceID)
	}
	if err := cursor.Err(); err != nil {
		return nil, storeError("grant scope cursor", err)
	}

	return ids, nil
}

// deleteGrantsForResource cascades grants away when a resource is
// permanently destroyed. Best-effort: purge proceeds regardless.
func (s *PermissionService) deleteGrantsForResource(ctx context.Context, resourceType models.ResourceType, resourceID primitive.ObjectID) {
	_, err := s.permissionCollection.DeleteMany(ctx, bson.M{
		"resource_id":   resourceID,
		"resource_type": resourceType,
	})
	if err != nil {
		utils.LogCollaboratorError("grant cascade delete failed", err)
	}
}
