package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User rows are created and maintained by the external identity provider;
// this service only reads them (grant target lookups).
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
