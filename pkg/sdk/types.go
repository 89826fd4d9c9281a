package aadb

import (
	"context"
	"io"

	"github.com/aadb-project/aadb/internal/domain/batch"
	dombio "github.com/aadb-project/aadb/internal/domain/biomarker"
	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/query"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	"github.com/aadb-project/aadb/internal/domain/search/result"
	recorduc "github.com/aadb-project/aadb/internal/usecase/record"
)

type (
	// Record is one disease / autoantibody / autoantigen association.
	Record = domrec.Record
	// Biomarker is one clinical biomarker entry.
	Biomarker = dombio.Biomarker
	// ImportSummary reports a best-effort bulk import.
	ImportSummary = batch.Summary
	// AdvancedStats aggregates every advanced search match.
	AdvancedStats = result.Stats
)

// Export formats.
const (
	FormatJSON = recorduc.FormatJSON
	FormatCSV  = recorduc.FormatCSV
)

// ListQuery selects one ranked page. Zero values mean: no search, every field,
// default sort, page 1, default page size.
type ListQuery struct {
	Search  string
	Field   string
	Filters map[string]string
	Sort    string
	Order   string // "asc" or "desc"
	Page    int
	Limit   int
}

func (q ListQuery) request(reg field.Registry) request.List {
	return request.NewList(reg,
		query.Params{Search: q.Search, Field: q.Field, Filters: q.Filters},
		q.Sort, q.Order, q.Page, q.Limit, request.Limits{},
	)
}

// Page is one window of a ranked listing.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

func newPage[T any](p result.Page[T]) Page[T] {
	return Page[T]{
		Items:      p.Items(),
		Total:      p.Total(),
		Page:       p.Page(),
		Limit:      p.Limit(),
		TotalPages: p.TotalPages(),
	}
}

// Hit is one scored advanced search match.
type Hit struct {
	Score  int
	Record *Record
}

// AdvancedResult holds the ranked hits and, when requested, statistics over all matches.
type AdvancedResult struct {
	Hits  []Hit
	Count int
	Stats *AdvancedStats
}

// Internal interfaces for substitution in tests.
type recordUseCase interface {
	Get(ctx context.Context, id string) (*domrec.Record, error)
	Import(ctx context.Context, rows []map[string]string, source string) batch.Summary
	Export(ctx context.Context, w io.Writer, format string, req request.List) (int, error)
	Stats(ctx context.Context) (recorduc.Stats, error)
}

type biomarkerUseCase interface {
	Get(ctx context.Context, id string) (*dombio.Biomarker, error)
	Import(ctx context.Context, rows []map[string]string) batch.Summary
}

type searcher[T any] interface {
	Registry() field.Registry
	List(ctx context.Context, req request.List) (result.Page[T], error)
	Advanced(ctx context.Context, req request.Advanced) (result.Advanced[T], error)
}
