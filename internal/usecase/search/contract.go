package search

import (
	"context"

	"github.com/aadb-project/aadb/internal/domain/search/filter"
	"github.com/aadb-project/aadb/internal/repository/docstore"
)

// Repository defines the storage contract for ranked retrieval.
type Repository[T any] interface {
	Find(ctx context.Context, pred filter.Predicate, opts docstore.FindOptions[T]) ([]T, int, error)
	Distinct(ctx context.Context, field string, pred filter.Predicate) ([]string, error)
}
