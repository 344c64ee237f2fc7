package dal

import "errors"

// Error kinds callers can branch on with errors.Is. Everything except a
// migration failure (which never reaches the DAL) is handled locally by
// callers and converted into a safe default or a logged no-op.
var (
	// ErrPersistenceUnavailable marks a storage-level failure under an
	// operation that must not fail silently.
	ErrPersistenceUnavailable = errors.New("dal: persistence unavailable")

	// ErrValidation marks input rejected at the DAL boundary before it
	// reaches storage.
	ErrValidation = errors.New("dal: validation error")

	// ErrMissingProfile marks an operation referencing a player_id with no
	// profile row.
	ErrMissingProfile = errors.New("dal: missing profile")
)
