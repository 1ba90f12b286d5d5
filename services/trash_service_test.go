package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/hazaribi/google-drive-clone-backend-secure/models"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

func newMockTrashService(mt *mtest.T) *TrashService {
	return NewTrashService(mt.DB, &StorageService{}, NewPermissionService(mt.DB))
}

// A second delete of the same resource observes NotFound: the first
// transition consumed the Active state.
func TestSoftDeleteNotIdempotent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second call", func(mt *mtest.T) {
		svc := newMockTrashService(mt)
		caller := primitive.NewObjectID()
		fileID := primitive.NewObjectID()

		mt.AddMockResponses(
			findResponse(mt, "files", ownerDoc(fileID, caller)),
			updateResponse(1),
			findResponse(mt, "files", ownerDoc(fileID, caller)),
			updateResponse(0),
		)

		require.NoError(t, svc.SoftDelete(context.Background(), models.ResourceTypeFile, fileID, caller))

		err := svc.SoftDelete(context.Background(), models.ResourceTypeFile, fileID, caller)
		assert.True(t, errors.Is(err, utils.ErrNotFound))
	})
}

// Restoring a resource that is not in the trash fails NotFound rather
// than succeeding as a no-op.
func TestRestoreActiveFileNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("active file", func(mt *mtest.T) {
		svc := newMockTrashService(mt)
		caller := primitive.NewObjectID()
		fileID := primitive.NewObjectID()

		mt.AddMockResponses(
			findResponse(mt, "files", ownerDoc(fileID, caller)),
			updateResponse(0),
		)

		err := svc.Restore(context.Background(), models.ResourceTypeFile, fileID, caller)
		assert.True(t, errors.Is(err, utils.ErrNotFound))
	})
}

func capturedUpdateDoc(mt *mtest.T) bson.Raw {
	for {
		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev, "no update command was sent")
		if ev.CommandName != "update" {
			continue
		}
		vals, err := ev.Command.Lookup("updates").Array().Values()
		require.NoError(mt, err)
		require.NotEmpty(mt, vals)
		return vals[0].Document().Lookup("u").Document()
	}
}

// Soft delete must write trashed_at and nothing else, so that
// delete + restore round-trips the row bit for bit.
func TestSoftDeleteTouchesOnlyTrashedAt(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update document", func(mt *mtest.T) {
		svc := newMockTrashService(mt)
		caller := primitive.NewObjectID()
		fileID := primitive.NewObjectID()

		mt.AddMockResponses(
			findResponse(mt, "files", ownerDoc(fileID, caller)),
			updateResponse(1),
		)
		require.NoError(t, svc.SoftDelete(context.Background(), models.ResourceTypeFile, fileID, caller))

		u := capturedUpdateDoc(mt)
		elems, err := u.Elements()
		require.NoError(t, err)
		require.Len(t, elems, 1)
		assert.Equal(t, "$set", elems[0].Key())

		setElems, err := u.Lookup("$set").Document().Elements()
		require.NoError(t, err)
		require.Len(t, setElems, 1)
		assert.Equal(t, "trashed_at", setElems[0].Key())
	})
}

// Restore is the exact inverse: a single $unset of trashed_at.
func TestRestoreUnsetsOnlyTrashedAt(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update document", func(mt *mtest.T) {
		svc := newMockTrashService(mt)
		caller := primitive.NewObjectID()
		fileID := primitive.NewObjectID()

		mt.AddMockResponses(
			findResponse(mt, "files", ownerDoc(fileID, caller)),
			updateResponse(1),
		)
		require.NoError(t, svc.Restore(context.Background(), models.ResourceTypeFile, fileID, caller))

		u := capturedUpdateDoc(mt)
		elems, err := u.Elements()
		require.NoError(t, err)
		require.Len(t, elems, 1)
		assert.Equal(t, "$unset", elems[0].Key())

		unsetElems, err := u.Lookup("$unset").Document().Elements()
		require.NoError(t, err)
		require.Len(t, unsetElems, 1)
		assert.Equal(t, "trashed_at", unsetElems[0].Key())
	})
}
