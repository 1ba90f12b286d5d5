package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPublicViewOmitsPrivateFields(t *testing.T) {
	token := "deadbeef"
	f := File{
		ID:         primitive.NewObjectID(),
		Name:       "notes.txt",
		Size:       42,
		MimeType:   "text/plain",
		OwnerID:    primitive.NewObjectID(),
		ObjectPath: "users/x/y/notes.txt",
		ShareToken: &token,
		IsPublic:   true,
		CreatedAt:  time.Now().UTC(),
	}

	view := f.PublicView()
	data, err := json.Marshal(view)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Contains(t, m, "name")
	assert.Contains(t, m, "size")
	assert.Contains(t, m, "mime_type")
	assert.NotContains(t, m, "owner_id")
	assert.NotContains(t, m, "object_path")
	assert.NotContains(t, m, "share_token")
	assert.NotContains(t, m, "folder_id")
}

func TestFileJSONHidesStorageFields(t *testing.T) {
	token := "deadbeef"
	f := File{Name: "notes.txt", ObjectPath: "users/x/y/notes.txt", ShareToken: &token}

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "object_path")
	assert.NotContains(t, m, "share_token")
}
