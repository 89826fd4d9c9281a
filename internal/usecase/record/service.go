package record

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aadb-project/aadb/internal/domain"
	"github.com/aadb-project/aadb/internal/domain/batch"
	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
	"github.com/aadb-project/aadb/internal/logger"
	"github.com/aadb-project/aadb/internal/metrics"
	"github.com/aadb-project/aadb/internal/repository/docstore"
)

// Record sources.
const (
	SourceManual = "manual"
	SourceImport = "import"
)

const topDiseases = 10

// Stats summarizes the record collection.
type Stats struct {
	Total                  int              `json:"total"`
	Verified               int              `json:"verified"`
	DistinctDiseases       int              `json:"distinctDiseases"`
	DistinctAutoantibodies int              `json:"distinctAutoantibodies"`
	DistinctAutoantigens   int              `json:"distinctAutoantigens"`
	TopDiseases            []docstore.Group `json:"topDiseases"`
}

// Service handles record CRUD, bulk import/export and reference-data lookups.
type Service struct {
	repo          Repository
	ranker        Ranker
	reg           field.Registry
	exportMaxRows int
	now           func() time.Time
	newID         func() string
}

// New creates a record service.
func New(repo Repository, ranker Ranker) *Service {
	return &Service{
		repo:          repo,
		ranker:        ranker,
		reg:           field.Records(),
		exportMaxRows: 50000,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// WithExportLimit caps exported rows.
func (s *Service) WithExportLimit(maxRows int) *Service {
	if maxRows > 0 {
		s.exportMaxRows = maxRows
	}
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates and stores a new record under a fresh id.
func (s *Service) Create(ctx context.Context, in domrec.Record) (*domrec.Record, error) {
	r := in.Clone()
	r.Trim()
	if err := r.Validate(); err != nil {
		return nil, err //nolint:wrapcheck // domain validation error
	}
	now := s.now().UTC()
	r.ID = s.newID()
	r.Metadata.CreatedAt = now
	r.Metadata.UpdatedAt = now
	if r.Metadata.Source == "" {
		r.Metadata.Source = SourceManual
	}
	if err := s.repo.Insert(ctx, &r); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	logger.FromContext(ctx).Info("record created", zap.String("record_id", r.ID))
	return &r, nil
}

// Get retrieves a record by id.
func (s *Service) Get(ctx context.Context, id string) (*domrec.Record, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return r, nil
}

// Update replaces the content of an existing record, keeping its id and creation metadata.
func (s *Service) Update(ctx context.Context, id string, in domrec.Record) (*domrec.Record, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	r := in.Clone()
	r.Trim()
	if err := r.Validate(); err != nil {
		return nil, err //nolint:wrapcheck // domain validation error
	}
	r.ID = existing.ID
	r.Metadata.CreatedAt = existing.Metadata.CreatedAt
	r.Metadata.UpdatedAt = s.now().UTC()
	if r.Metadata.Source == "" {
		r.Metadata.Source = existing.Metadata.Source
	}
	if err := s.repo.Replace(ctx, &r); err != nil {
		return nil, fmt.Errorf("replace record: %w", err)
	}
	return &r, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// Import maps rows onto records and inserts the valid ones best-effort.
// Rows are numbered from 1; inserted rows are never rolled back.
func (s *Service) Import(ctx context.Context, rows []map[string]string, source string) batch.Summary {
	if source == "" {
		source = SourceImport
	}
	now := s.now().UTC()
	results := make([]batch.Result, len(rows))
	valid := make([]*domrec.Record, 0, len(rows))
	pos := make([]int, 0, len(rows))

	for i, row := range rows {
		r := fromRow(row)
		if err := r.Validate(); err != nil {
			results[i] = batch.NewError(i+1, "", err)
			continue
		}
		r.ID = s.newID()
		r.Metadata = domrec.Metadata{Source: source, CreatedAt: now, UpdatedAt: now}
		valid = append(valid, &r)
		pos = append(pos, i)
	}

	for j, err := range s.repo.InsertMany(ctx, valid) {
		i := pos[j]
		if err != nil {
			results[i] = batch.NewError(i+1, valid[j].ID, err)
			continue
		}
		results[i] = batch.NewOK(i+1, valid[j].ID)
	}

	sum := batch.Summarize(results)
	metrics.ObserveImport("records", sum.Inserted, sum.Failed)
	logger.FromContext(ctx).Info("records imported",
		zap.Int("rows", len(rows)),
		zap.Int("inserted", sum.Inserted),
		zap.Int("failed", sum.Failed),
	)
	return sum
}

// Unique lists the distinct values of a registry field. Unlike listing filters,
// an unknown field is rejected.
func (s *Service) Unique(ctx context.Context, name string) ([]string, error) {
	if !s.reg.Has(name) {
		return nil, domain.NewInvalidField(name)
	}
	values, err := s.repo.Distinct(ctx, name, filter.All())
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", name, err)
	}
	return values, nil
}

// Stats gathers collection statistics with concurrent aggregate reads.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.Count(gctx, filter.All())
		st.Total = n
		return wrap("count records", err)
	})
	g.Go(func() error {
		n, err := s.repo.Count(gctx, filter.Match(filter.Exact(domrec.VerifiedKey, "true")))
		st.Verified = n
		return wrap("count verified", err)
	})
	distinct := map[string]*int{
		field.Disease:      &st.DistinctDiseases,
		field.Autoantibody: &st.DistinctAutoantibodies,
		field.Autoantigen:  &st.DistinctAutoantigens,
	}
	for name, dst := range distinct {
		g.Go(func() error {
			values, err := s.repo.Distinct(gctx, name, filter.All())
			*dst = len(values)
			return wrap("distinct "+name, err)
		})
	}
	g.Go(func() error {
		groups, err := s.repo.GroupCount(gctx, field.Disease, filter.All())
		if len(groups) > topDiseases {
			groups = groups[:topDiseases]
		}
		st.TopDiseases = groups
		return wrap("group diseases", err)
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err //nolint:wrapcheck // wrapped per read
	}
	if st.TopDiseases == nil {
		st.TopDiseases = []docstore.Group{}
	}
	return st, nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
