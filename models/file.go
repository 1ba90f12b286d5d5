package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type File struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name     string              `bson:"name" json:"name"`
	Size     int64               `bson:"size" json:"size"`
	MimeType string              `bson:"mime_type" json:"mime_type"`
	FolderID *primitive.ObjectID `bson:"folder_id,omitempty" json:"folder_id,omitempty"`
	OwnerID  primitive.ObjectID  `bson:"owner_id" json:"owner_id"`

	// ObjectPath is the key of the backing object in the object store.
	// Globally unique, never reused, never exposed to callers.
	ObjectPath string `bson:"object_path" json:"-"`

	ShareToken *string `bson:"share_token,omitempty" json:"-"`
	IsPublic   bool    `bson:"is_public" json:"is_public"`

	TrashedAt *time.Time `bson:"trashed_at,omitempty" json:"trashed_at,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// PublicFileView is the projection returned on the anonymous, token-gated
// path. No owner or storage fields.
type PublicFileView struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Size      int64              `json:"size"`
	MimeType  string             `json:"mime_type"`
	CreatedAt time.Time          `json:"created_at"`
}

func (f *File) PublicView() PublicFileView {
	return PublicFileView{
		ID:        f.ID,
		Name:      f.Name,
		Size:      f.Size,
		MimeType:  f.MimeType,
		CreatedAt: f.CreatedAt,
	}
}
