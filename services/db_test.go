package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

func TestStoreErrorMapsToUnavailable(t *testing.T) {
	err := storeError("file lookup", fmt.Errorf("connection reset by peer"))
	assert.True(t, errors.Is(err, utils.ErrUnavailable))

	// Raw collaborator text stays out of the surfaced error.
	assert.NotContains(t, err.Error(), "connection reset")
}

func TestStoreErrorDeadlineExceeded(t *testing.T) {
	err := storeError("file lookup", context.DeadlineExceeded)
	assert.True(t, errors.Is(err, utils.ErrUnavailable))
}
