package backup

import (
	"context"
	"encoding/json"
	"time"
)

// Source is one collection included in a snapshot.
type Source interface {
	Name() string
	Raw(ctx context.Context) ([]json.RawMessage, error)
}

// Object is a stored snapshot.
type Object struct {
	Key          string
	LastModified time.Time
	Size         int64
}

// ObjectStore is the snapshot destination (S3 or compatible).
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte) error
	List(ctx context.Context, prefix string) ([]Object, error)
	Delete(ctx context.Context, key string) error
}
