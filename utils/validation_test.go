package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResourceName(t *testing.T) {
	name, err := ValidateResourceName("report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", name)
}

func TestValidateResourceNameTrims(t *testing.T) {
	name, err := ValidateResourceName("  quarterly notes  ")
	require.NoError(t, err)
	assert.Equal(t, "quarterly notes", name)
}

func TestValidateResourceNameEmpty(t *testing.T) {
	_, err := ValidateResourceName("")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = ValidateResourceName("   \t\n ")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestValidateResourceNameLength(t *testing.T) {
	name, err := ValidateResourceName(strings.Repeat("a", 255))
	require.NoError(t, err)
	assert.Len(t, name, 255)

	_, err = ValidateResourceName(strings.Repeat("a", 256))
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	// Limit counts runes, not bytes.
	name, err = ValidateResourceName(strings.Repeat("å", 255))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("å", 255), name)
}

func TestValidateResourceNameInvalidBytes(t *testing.T) {
	_, err := ValidateResourceName("bad\x00name")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = ValidateResourceName("bad\xff\xfename")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
