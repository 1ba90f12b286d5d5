package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionLevelOrdering(t *testing.T) {
	assert.True(t, LevelView < LevelEdit)
	assert.True(t, LevelEdit < LevelOwner)
}

func TestPermissionLevelCovers(t *testing.T) {
	assert.True(t, LevelOwner.Covers(LevelView))
	assert.True(t, LevelOwner.Covers(LevelEdit))
	assert.True(t, LevelOwner.Covers(LevelOwner))
	assert.True(t, LevelEdit.Covers(LevelView))
	assert.True(t, LevelEdit.Covers(LevelEdit))
	assert.False(t, LevelEdit.Covers(LevelOwner))
	assert.True(t, LevelView.Covers(LevelView))
	assert.False(t, LevelView.Covers(LevelEdit))
	assert.False(t, LevelView.Covers(LevelOwner))
}

func TestParsePermissionLevel(t *testing.T) {
	level, ok := ParsePermissionLevel("view")
	require.True(t, ok)
	assert.Equal(t, LevelView, level)

	level, ok = ParsePermissionLevel("edit")
	require.True(t, ok)
	assert.Equal(t, LevelEdit, level)

	level, ok = ParsePermissionLevel("owner")
	require.True(t, ok)
	assert.Equal(t, LevelOwner, level)

	_, ok = ParsePermissionLevel("admin")
	assert.False(t, ok)
	_, ok = ParsePermissionLevel("")
	assert.False(t, ok)
	_, ok = ParsePermissionLevel("View")
	assert.False(t, ok)
}

func TestPermissionLevelJSON(t *testing.T) {
	data, err := json.Marshal(LevelEdit)
	require.NoError(t, err)
	assert.Equal(t, `"edit"`, string(data))

	var level PermissionLevel
	require.NoError(t, json.Unmarshal([]byte(`"owner"`), &level))
	assert.Equal(t, LevelOwner, level)

	err = json.Unmarshal([]byte(`"superuser"`), &level)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`2`), &level)
	assert.Error(t, err)
}

func TestParseResourceType(t *testing.T) {
	rt, ok := ParseResourceType("file")
	require.True(t, ok)
	assert.Equal(t, ResourceTypeFile, rt)

	rt, ok = ParseResourceType("folder")
	require.True(t, ok)
	assert.Equal(t, ResourceTypeFolder, rt)

	_, ok = ParseResourceType("document")
	assert.False(t, ok)
}
