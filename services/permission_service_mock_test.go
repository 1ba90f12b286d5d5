package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/hazaribi/google-drive-clone-backend-secure/models"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

// A missing resource denies exactly like a missing grant so callers
// cannot probe for existence.
func TestAuthorizeMissingResourceDenied(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing resource", func(mt *mtest.T) {
		svc := NewPermissionService(mt.DB)

		mt.AddMockResponses(findResponse(mt, "files"))

		err := svc.Authorize(context.Background(), models.ResourceTypeFile, primitive.NewObjectID(), primitive.NewObjectID(), models.LevelView)
		assert.True(t, errors.Is(err, utils.ErrAccessDenied))
	})
}

func TestAuthorizeNoGrantDenied(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no grant", func(mt *mtest.T) {
		svc := NewPermissionService(mt.DB)
		fileID := primitive.NewObjectID()
		owner := primitive.NewObjectID()
		caller := primitive.NewObjectID()

		mt.AddMockResponses(
			findResponse(mt, "files", ownerDoc(fileID, owner)),
			findResponse(mt, "permissions"),
		)

		err := svc.Authorize(context.Background(), models.ResourceTypeFile, fileID, caller, models.LevelView)
		assert.True(t, errors.Is(err, utils.ErrAccessDenied))
	})
}

// A grant below the required level is a distinct denial class: the
// caller may know the resource exists but lacks the level.
func TestAuthorizeGrantBelowRequired(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("view grant, edit required", func(mt *mtest.T) {
		svc := NewPermissionService(mt.DB)
		fileID := primitive.NewObjectID()
		owner := primitive.NewObjectID()
		caller := primitive.NewObjectID()

		mt.AddMockResponses(
			findResponse(mt, "files", ownerDoc(fileID, owner)),
			findResponse(mt, "permissions", bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "user_id", Value: caller},
				{Key: "resource_id", Value: fileID},
				{Key: "resource_type", Value: "file"},
				{Key: "level", Value: int(models.LevelView)},
				{Key: "granted_by", Value: owner},
				{Key: "granted_at", Value: time.Now().UTC()},
			}),
		)

		err := svc.Authorize(context.Background(), models.ResourceTypeFile, fileID, caller, models.LevelEdit)
		assert.True(t, errors.Is(err, utils.ErrInsufficientPermission))
	})
}

// The owner never needs a grant row: only the resource lookup happens.
func TestAuthorizeOwnerImplicit(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("owner", func(mt *mtest.T) {
		svc := NewPermissionService(mt.DB)
		fileID := primitive.NewObjectID()
		owner := primitive.NewObjectID()

		mt.AddMockResponses(findResponse(mt, "files", ownerDoc(fileID, owner)))

		err := svc.Authorize(context.Background(), models.ResourceTypeFile, fileID, owner, models.LevelOwner)
		assert.NoError(t, err)
	})
}

// A row that fails to decode must fail the whole scope lookup instead
// of silently shrinking the caller's search visibility.
func TestGrantedResourceIDsDecodeError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("bad row", func(mt *mtest.T) {
		svc := NewPermissionService(mt.DB)

		mt.AddMockResponses(findResponse(mt, "permissions",
			bson.D{{Key: "resource_id", Value: "not-an-object-id"}}))

		_, err := svc.grantedResourceIDs(context.Background(), primitive.NewObjectID(), models.ResourceTypeFile)
		assert.True(t, errors.Is(err, utils.ErrUnavailable))
	})
}
