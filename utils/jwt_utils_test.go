package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "unit-test-secret"
	testIssuer = "drive"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWTTokenWithSecret("507f1f77bcf86cd799439011", "a@example.com", "Alex", testSecret, testIssuer, time.Hour)
	require.NoError(t, err)

	claims, err := VerifyJWTTokenWithSecret(token, testSecret, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "Alex", claims.Name)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWTTokenWithSecret("507f1f77bcf86cd799439011", "a@example.com", "Alex", testSecret, testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = VerifyJWTTokenWithSecret(token, "different-secret", testIssuer)
	assert.Error(t, err)
}

func TestJWTIssuerMismatch(t *testing.T) {
	token, err := GenerateJWTTokenWithSecret("507f1f77bcf86cd799439011", "a@example.com", "Alex", testSecret, "someone-else", time.Hour)
	require.NoError(t, err)

	_, err = VerifyJWTTokenWithSecret(token, testSecret, testIssuer)
	assert.Error(t, err)

	// Empty expected issuer disables the check.
	_, err = VerifyJWTTokenWithSecret(token, testSecret, "")
	assert.NoError(t, err)
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWTTokenWithSecret("507f1f77bcf86cd799439011", "a@example.com", "Alex", testSecret, testIssuer, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyJWTTokenWithSecret(token, testSecret, testIssuer)
	assert.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	_, err := VerifyJWTTokenWithSecret("not.a.token", testSecret, testIssuer)
	assert.Error(t, err)
}
