package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewObjectPath(t *testing.T) {
	s := &StorageService{}

	path := s.NewObjectPath("507f1f77bcf86cd799439011", "report.pdf")
	parts := strings.Split(path, "/")

	assert.Len(t, parts, 4)
	assert.Equal(t, "users", parts[0])
	assert.Equal(t, "507f1f77bcf86cd799439011", parts[1])
	assert.NotEmpty(t, parts[2])
	assert.Equal(t, "report.pdf", parts[3])
}

func TestNewObjectPathNeverReused(t *testing.T) {
	s := &StorageService{}

	a := s.NewObjectPath("507f1f77bcf86cd799439011", "report.pdf")
	b := s.NewObjectPath("507f1f77bcf86cd799439011", "report.pdf")
	assert.NotEqual(t, a, b)
}
