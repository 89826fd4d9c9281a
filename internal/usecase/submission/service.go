package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aadb-project/aadb/internal/domain"
	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	"github.com/aadb-project/aadb/internal/domain/search/result"
	domsub "github.com/aadb-project/aadb/internal/domain/submission"
	"github.com/aadb-project/aadb/internal/logger"
	"github.com/aadb-project/aadb/internal/metrics"
	"github.com/aadb-project/aadb/internal/repository/docstore"
)

// Service runs the moderation workflow: users propose records, admins approve or reject them.
type Service struct {
	repo    Repository
	records RecordWriter
	limits  request.Limits
	now     func() time.Time
	newID   func() string
}

// New creates a submission service.
func New(repo Repository, records RecordWriter) *Service {
	return &Service{repo: repo, records: records, now: time.Now, newID: uuid.NewString}
}

// WithLimits configures page size limits.
func (s *Service) WithLimits(lim request.Limits) *Service {
	s.limits = lim
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create stores a pending submission owned by the actor.
func (s *Service) Create(ctx context.Context, actor domain.Actor, draft domrec.Record) (*domsub.Submission, error) {
	sub, err := domsub.New(s.newID(), actor.User, draft.Clone(), s.now().UTC())
	if err != nil {
		return nil, err //nolint:wrapcheck // domain validation error
	}
	if err := s.repo.Insert(ctx, &sub); err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	logger.FromContext(ctx).Info("submission created",
		zap.String("submission_id", sub.ID),
		zap.String("submitted_by", sub.SubmittedBy),
	)
	return &sub, nil
}

// Mine lists the actor's own submissions, newest first.
func (s *Service) Mine(ctx context.Context, actor domain.Actor, page, limit int) (result.Page[*domsub.Submission], error) {
	return s.page(ctx, filter.Match(filter.Equal("submittedBy", actor.User)), page, limit)
}

// List lists submissions in any or one status, newest first.
func (s *Service) List(ctx context.Context, status string, page, limit int) (result.Page[*domsub.Submission], error) {
	st, err := domsub.ParseStatus(status)
	if err != nil {
		return result.Page[*domsub.Submission]{}, err //nolint:wrapcheck // domain validation error
	}
	pred := filter.All()
	if st != "" {
		pred = filter.Match(filter.Exact("status", string(st)))
	}
	return s.page(ctx, pred, page, limit)
}

// Get returns a submission visible to the actor: its owner or an admin.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (*domsub.Submission, error) {
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if !sub.OwnedBy(actor.User) && !actor.IsAdmin() {
		return nil, fmt.Errorf("submission %s: %w", id, domain.ErrForbidden)
	}
	return sub, nil
}

// Edit replaces the draft of the actor's own pending submission.
func (s *Service) Edit(ctx context.Context, actor domain.Actor, id string, draft domrec.Record) (*domsub.Submission, error) {
	sub, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := sub.Edit(draft.Clone(), s.now().UTC()); err != nil {
		return nil, err //nolint:wrapcheck // domain error
	}
	if err := s.repo.Replace(ctx, sub); err != nil {
		return nil, fmt.Errorf("replace submission: %w", err)
	}
	return sub, nil
}

// Delete withdraws the actor's own pending submission. Admins may delete any submission.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get submission: %w", err)
	}
	if !actor.IsAdmin() {
		if !sub.OwnedBy(actor.User) {
			return fmt.Errorf("submission %s: %w", id, domain.ErrForbidden)
		}
		if sub.Status != domsub.Pending {
			return fmt.Errorf("delete %s submission: %w", sub.Status, domain.ErrAlreadyReviewed)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	return nil
}

// Approve materializes the draft as a verified record, then marks the submission approved.
// The two writes are not atomic: if marking fails the new record is deleted again
// (best effort, logged either way).
func (s *Service) Approve(ctx context.Context, reviewer domain.Actor, id, note string) (*domsub.Submission, *domrec.Record, error) {
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get submission: %w", err)
	}
	rec, err := sub.Approve(reviewer.User, note, s.newID(), s.now().UTC())
	if err != nil {
		return nil, nil, err //nolint:wrapcheck // domain error
	}

	log := logger.FromContext(ctx).With(
		zap.String("submission_id", sub.ID),
		zap.String("record_id", rec.ID),
		zap.String("reviewed_by", reviewer.User),
	)

	if err := s.records.Insert(ctx, &rec); err != nil {
		return nil, nil, fmt.Errorf("insert approved record: %w", err)
	}
	if err := s.repo.Replace(ctx, sub); err != nil {
		if delErr := s.records.Delete(ctx, rec.ID); delErr != nil {
			log.Error("approval left an orphan record",
				zap.Error(err),
				zap.NamedError("compensation_error", delErr),
			)
		} else {
			log.Warn("approval rolled back", zap.Error(err))
		}
		return nil, nil, fmt.Errorf("mark submission approved: %w", err)
	}

	metrics.SubmissionReviewsTotal.WithLabelValues(string(domsub.Approved)).Inc()
	log.Info("submission approved")
	return sub, &rec, nil
}

// Reject closes a pending submission without creating a record.
func (s *Service) Reject(ctx context.Context, reviewer domain.Actor, id, note string) (*domsub.Submission, error) {
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if err := sub.Reject(reviewer.User, note, s.now().UTC()); err != nil {
		return nil, err //nolint:wrapcheck // domain error
	}
	if err := s.repo.Replace(ctx, sub); err != nil {
		return nil, fmt.Errorf("mark submission rejected: %w", err)
	}
	metrics.SubmissionReviewsTotal.WithLabelValues(string(domsub.Rejected)).Inc()
	logger.FromContext(ctx).Info("submission rejected",
		zap.String("submission_id", sub.ID),
		zap.String("reviewed_by", reviewer.User),
	)
	return sub, nil
}

func (s *Service) owned(ctx context.Context, actor domain.Actor, id string) (*domsub.Submission, error) {
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if !sub.OwnedBy(actor.User) {
		return nil, fmt.Errorf("submission %s: %w", id, domain.ErrForbidden)
	}
	return sub, nil
}

func (s *Service) page(ctx context.Context, pred filter.Predicate, page, limit int) (result.Page[*domsub.Submission], error) {
	page, limit = request.Window(page, limit, s.limits)
	items, total, err := s.repo.Find(ctx, pred, docstore.FindOptions[*domsub.Submission]{
		Compare: domsub.NewestFirst,
		Skip:    (page - 1) * limit,
		Limit:   limit,
	})
	if err != nil {
		return result.Page[*domsub.Submission]{}, fmt.Errorf("find submissions: %w", err)
	}
	return result.NewPage(items, total, page, limit), nil
}
