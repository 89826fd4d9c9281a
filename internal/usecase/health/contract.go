package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// StorageChecker checks the backup object store.
type StorageChecker interface {
	Check(ctx context.Context) error
}
