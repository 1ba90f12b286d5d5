package services

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// findResponse is a single-batch, already-exhausted cursor reply for a
// find against the named collection.
func findResponse(mt *mtest.T, coll string, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, mt.DB.Name()+"."+coll, mtest.FirstBatch, docs...)
}

// updateResponse mimics an update reply matching n documents.
func updateResponse(matched int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: matched},
	)
}

func ownerDoc(id, owner primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "owner_id", Value: owner}}
}
