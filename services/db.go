package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

// storeError translates an unexpected database failure into the
// retryable Unavailable kind after logging the redacted original.
// mongo.ErrNoDocuments and duplicate keys are handled at call sites;
// this is the fallback for outages and timeouts.
func storeError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		utils.LogCollaboratorError(op+" timed out", err)
		return fmt.Errorf("%s: %w", op, utils.ErrUnavailable)
	}
	utils.LogCollaboratorError(op+" failed", err)
	return fmt.Errorf("%s: %w", op, utils.ErrUnavailable)
}

func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
