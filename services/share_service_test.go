package services

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShareToken(t *testing.T) {
	token, err := newShareToken()
	require.NoError(t, err)

	// 16 random bytes hex encoded.
	assert.Len(t, token, 32)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)
}

func TestNewShareTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := newShareToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "token repeated")
		seen[token] = true
	}
}

func TestBuildShareURL(t *testing.T) {
	assert.Equal(t, "https://drive.example.com/s/abc123",
		buildShareURL("https://drive.example.com/s", "abc123"))
	assert.Equal(t, "https://drive.example.com/s/abc123",
		buildShareURL("https://drive.example.com/s/", "abc123"))
	assert.Equal(t, "https://drive.example.com/s/a%2Fb",
		buildShareURL("https://drive.example.com/s", "a/b"))
}
