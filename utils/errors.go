package utils

import "errors"

// Error kinds surfaced by the service layer. Services wrap these with
// fmt.Errorf("...: %w", Err...) and controllers map them to HTTP statuses
// in HandleServiceError. Collaborator failures are logged (redacted) at
// the call site and surfaced only as ErrUnavailable; their raw text never
// reaches a caller.
var (
	// ErrInvalidArgument: malformed name, id, or permission level.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthenticated: missing or invalid caller credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrAccessDenied: the caller has no grant on the resource, or the
	// resource does not exist. The two cases are deliberately the same
	// error so non-owners cannot probe for existence.
	ErrAccessDenied = errors.New("access denied")

	// ErrInsufficientPermission: a grant exists but its level is below
	// what the operation requires.
	ErrInsufficientPermission = errors.New("insufficient permission")

	// ErrNotFound: resource absent or in the wrong lifecycle state for
	// the requested transition.
	ErrNotFound = errors.New("not found")

	// ErrConflict: uniqueness violation on create or rename.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable: a backing collaborator timed out or failed;
	// retryable.
	ErrUnavailable = errors.New("service unavailable")
)
