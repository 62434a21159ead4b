package seeder

import "errors"

// Error taxonomy for the seeding pipeline. Loader and store
// implementations wrap these sentinels so callers can classify failures
// with errors.Is.
var (
	// ErrNotFound means the seed file does not exist. Fatal before any
	// remote call.
	ErrNotFound = errors.New("seed file not found")

	// ErrMalformed means the seed file could not be parsed as an array
	// of records. Fatal before any remote call.
	ErrMalformed = errors.New("seed file malformed")

	// ErrConflict means the store already holds a record with the same
	// id and partition key. Per-record, non-fatal; the existing record
	// is left untouched.
	ErrConflict = errors.New("record already exists")

	// ErrUnauthorized means the store rejected the credentials. Fatal
	// for the whole run: it would recur for every record and bury the
	// real per-item outcomes.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrVerification means the post-upload count query failed. Reported
	// as a warning, never fails the run.
	ErrVerification = errors.New("count verification failed")
)
