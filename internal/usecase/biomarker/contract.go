package biomarker

import (
	"context"

	dombio "github.com/aadb-project/aadb/internal/domain/biomarker"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
)

// Repository defines the storage contract for biomarkers.
type Repository interface {
	Get(ctx context.Context, id string) (*dombio.Biomarker, error)
	Insert(ctx context.Context, b *dombio.Biomarker) error
	InsertMany(ctx context.Context, bs []*dombio.Biomarker) []error
	Replace(ctx context.Context, b *dombio.Biomarker) error
	Delete(ctx context.Context, id string) error
	Distinct(ctx context.Context, field string, pred filter.Predicate) ([]string, error)
}
