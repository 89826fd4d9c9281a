package record

import (
	"context"

	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	"github.com/aadb-project/aadb/internal/repository/docstore"
)

// Repository defines the storage contract for records.
type Repository interface {
	Get(ctx context.Context, id string) (*domrec.Record, error)
	Insert(ctx context.Context, r *domrec.Record) error
	InsertMany(ctx context.Context, rs []*domrec.Record) []error
	Replace(ctx context.Context, r *domrec.Record) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, pred filter.Predicate) (int, error)
	Distinct(ctx context.Context, field string, pred filter.Predicate) ([]string, error)
	GroupCount(ctx context.Context, field string, pred filter.Predicate) ([]docstore.Group, error)
}

// Ranker returns every record matching a listing request in ranked order.
type Ranker interface {
	Ranked(ctx context.Context, req request.List, maxRows int) ([]*domrec.Record, int, error)
}
