package submission

import (
	"context"

	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
	domsub "github.com/aadb-project/aadb/internal/domain/submission"
	"github.com/aadb-project/aadb/internal/repository/docstore"
)

// Repository defines the storage contract for submissions.
type Repository interface {
	Get(ctx context.Context, id string) (*domsub.Submission, error)
	Insert(ctx context.Context, s *domsub.Submission) error
	Replace(ctx context.Context, s *domsub.Submission) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, pred filter.Predicate, opts docstore.FindOptions[*domsub.Submission]) (
		[]*domsub.Submission, int, error,
	)
}

// RecordWriter materializes approved submissions.
type RecordWriter interface {
	Insert(ctx context.Context, r *domrec.Record) error
	Delete(ctx context.Context, id string) error
}
