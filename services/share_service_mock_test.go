package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

func newMockShareService(mt *mtest.T) *ShareService {
	return NewShareService(mt.DB, &StorageService{}, NewPermissionService(mt.DB), "https://drive.example.com/s")
}

// After revocation a token must behave exactly like one that never
// existed: NotFound, not a hint that it was once valid.
func TestRevokeThenResolveNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("revoked token", func(mt *mtest.T) {
		svc := newMockShareService(mt)
		owner := primitive.NewObjectID()
		fileID := primitive.NewObjectID()

		mt.AddMockResponses(
			findResponse(mt, "files", ownerDoc(fileID, owner)),
			updateResponse(1),
			findResponse(mt, "files"),
		)

		require.NoError(t, svc.RevokeLink(context.Background(), fileID, owner))

		_, err := svc.ResolveToken(context.Background(), "5e884898da28047151d0e56f8dc62927")
		assert.True(t, errors.Is(err, utils.ErrNotFound))
	})
}

// An unknown token and an empty token resolve identically.
func TestResolveTokenUnknown(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown token", func(mt *mtest.T) {
		svc := newMockShareService(mt)

		mt.AddMockResponses(findResponse(mt, "files"))

		_, err := svc.ResolveToken(context.Background(), "ffffffffffffffffffffffffffffffff")
		assert.True(t, errors.Is(err, utils.ErrNotFound))

		_, err = svc.ResolveToken(context.Background(), "")
		assert.True(t, errors.Is(err, utils.ErrNotFound))
	})
}
