package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResourceType identifies which collection a permission grant points at.
type ResourceType string

const (
	ResourceTypeFile   ResourceType = "file"
	ResourceTypeFolder ResourceType = "folder"
)

func ParseResourceType(s string) (ResourceType, bool) {
	switch ResourceType(s) {
	case ResourceTypeFile, ResourceTypeFolder:
		return ResourceType(s), true
	}
	return "", false
}

// PermissionLevel is the ordered access level attached to a grant.
// The ordinals are the total order: a grant satisfies a requirement
// iff its level is >= the required level.
type PermissionLevel int

const (
	LevelView PermissionLevel = iota + 1
	LevelEdit
	LevelOwner
)

func ParsePermissionLevel(s string) (PermissionLevel, bool) {
	switch s {
	case "view":
		return LevelView, true
	case "edit":
		return LevelEdit, true
	case "owner":
		return LevelOwner, true
	}
	return 0, false
}

func (l PermissionLevel) String() string {
	switch l {
	case LevelView:
		return "view"
	case LevelEdit:
		return "edit"
	case LevelOwner:
		return "owner"
	default:
		return "unknown"
	}
}

// Covers reports whether a grant at level l satisfies the required level.
func (l PermissionLevel) Covers(required PermissionLevel) bool {
	return l >= required
}

func (l PermissionLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *PermissionLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, ok := ParsePermissionLevel(s)
	if !ok {
		return fmt.Errorf("invalid permission level: %q", s)
	}
	*l = level
	return nil
}

// Permission is a delegated access grant on a single resource. The owner
// of a resource never needs a grant row; ownership implies LevelOwner.
// Unique per (resource_id, resource_type, user_id).
type Permission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	ResourceID   primitive.ObjectID `bson:"resource_id" json:"resource_id"`
	ResourceType ResourceType       `bson:"resource_type" json:"resource_type"`
	Level        PermissionLevel    `bson:"level" json:"level"`
	GrantedBy    primitive.ObjectID `bson:"granted_by" json:"granted_by"`
	GrantedAt    time.Time          `bson:"granted_at" json:"granted_at"`
}
