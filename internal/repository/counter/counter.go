package counter

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aadb-project/aadb/internal/db"
)

// store is the consumer interface for counters (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Del(ctx context.Context, keys ...string) error
}

// Repo keeps named per-document counters under <prefix><collection>:<id>:<name>.
type Repo struct {
	store      store
	prefix     string
	collection string
}

// New creates a counter repository.
func New(s store, prefix, collection string) *Repo {
	return &Repo{store: s, prefix: prefix, collection: collection}
}

func (r *Repo) key(id, name string) string {
	return r.prefix + r.collection + ":" + id + ":" + name
}

// Incr adds one and returns the new value.
func (r *Repo) Incr(ctx context.Context, id, name string) (int64, error) {
	n, err := r.store.IncrBy(ctx, r.key(id, name), 1)
	if err != nil {
		return 0, fmt.Errorf("incr %s %s %s: %w", r.collection, id, name, err)
	}
	return n, nil
}

// Value returns the counter, 0 when never incremented.
func (r *Repo) Value(ctx context.Context, id, name string) (int64, error) {
	raw, err := r.store.Get(ctx, r.key(id, name))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get %s %s %s: %w", r.collection, id, name, err)
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %s %s: %w", r.collection, id, name, err)
	}
	return n, nil
}

// Drop removes the named counters of a document.
func (r *Repo) Drop(ctx context.Context, id string, names ...string) error {
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = r.key(id, n)
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("drop %s %s counters: %w", r.collection, id, err)
	}
	return nil
}
