package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the engine relies on. Idempotent;
// called once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	fileIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: "text"}},
			Options: options.Index().SetName("file_name_text"),
		},
		{
			// Token uniqueness enforced by the store; sparse so
			// unshared files don't collide on the missing field.
			Keys:    bson.D{{Key: "share_token", Value: 1}},
			Options: options.Index().SetName("file_share_token_unique").SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "trashed_at", Value: 1}},
			Options: options.Index().SetName("file_owner_trashed"),
		},
		{
			Keys:    bson.D{{Key: "folder_id", Value: 1}},
			Options: options.Index().SetName("file_folder"),
		},
	}
	if _, err := db.Collection("files").Indexes().CreateMany(ctx, fileIndexes); err != nil {
		return fmt.Errorf("failed to create file indexes: %w", err)
	}

	folderIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: "text"}},
			Options: options.Index().SetName("folder_name_text"),
		},
		{
			// Parent link lookup; permanent-delete cascades walk this.
			Keys:    bson.D{{Key: "parent_id", Value: 1}},
			Options: options.Index().SetName("folder_parent"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "trashed_at", Value: 1}},
			Options: options.Index().SetName("folder_owner_trashed"),
		},
		{
			// Sibling-name lookups for the active-name collision checks.
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "parent_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("folder_owner_parent_name"),
		},
	}
	if _, err := db.Collection("folders").Indexes().CreateMany(ctx, folderIndexes); err != nil {
		return fmt.Errorf("failed to create folder indexes: %w", err)
	}

	permissionIndexes := []mongo.IndexModel{
		{
			// One grant per (resource, grantee).
			Keys:    bson.D{{Key: "resource_id", Value: 1}, {Key: "resource_type", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("permission_resource_user_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "resource_type", Value: 1}},
			Options: options.Index().SetName("permission_user_type"),
		},
	}
	if _, err := db.Collection("permissions").Indexes().CreateMany(ctx, permissionIndexes); err != nil {
		return fmt.Errorf("failed to create permission indexes: %w", err)
	}

	return nil
}
