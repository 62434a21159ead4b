package types

import (
	"context"

	"github.com/xhad/vecseed/internal/models"
)

// Core interfaces
type Loader interface {
	Load(path string) ([]models.SourceRecord, error)
}

// DocumentStore is the remote container the seeder writes into. Create
// errors are classified with the sentinels in pkg/seeder: a write
// rejected because the (partition key, id) pair already exists wraps
// ErrConflict, an authorization failure wraps ErrUnauthorized, anything
// else is treated as transient.
type DocumentStore interface {
	CreateIfAbsent(ctx context.Context, rec models.StorageRecord) error
	Count(ctx context.Context) (int64, error)
	Close()
}

// CredentialProvider yields the password/token used when a new store
// connection is opened. The pipeline depends on it but never constructs
// one; the concrete provider is wired in by the caller.
type CredentialProvider interface {
	Password(ctx context.Context) (string, error)
}

// ReportFunc receives one Progress per completed batch. The seeder calls
// it from the orchestrating goroutine only, so implementations need no
// locking.
type ReportFunc func(models.Progress)
