package biomarker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aadb-project/aadb/internal/domain"
	"github.com/aadb-project/aadb/internal/domain/batch"
	dombio "github.com/aadb-project/aadb/internal/domain/biomarker"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
	"github.com/aadb-project/aadb/internal/logger"
	"github.com/aadb-project/aadb/internal/metrics"
)

// Input carries the editable biomarker fields.
type Input struct {
	Name          string            `json:"name"`
	Manifestation string            `json:"manifestation"`
	Prevalence    string            `json:"prevalence"`
	Raw           map[string]string `json:"raw,omitempty"`
}

// Service handles the biomarker catalog.
type Service struct {
	repo  Repository
	reg   field.Registry
	now   func() time.Time
	newID func() string
}

// New creates a biomarker service.
func New(repo Repository) *Service {
	return &Service{repo: repo, reg: field.Biomarkers(), now: time.Now, newID: uuid.NewString}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create stores a new biomarker.
func (s *Service) Create(ctx context.Context, in Input) (*dombio.Biomarker, error) {
	b, err := dombio.New(s.newID(), in.Name, in.Manifestation, in.Prevalence, in.Raw, s.now().UTC())
	if err != nil {
		return nil, err //nolint:wrapcheck // domain validation error
	}
	if err := s.repo.Insert(ctx, &b); err != nil {
		return nil, fmt.Errorf("insert biomarker: %w", err)
	}
	return &b, nil
}

// Get retrieves a biomarker by id.
func (s *Service) Get(ctx context.Context, id string) (*dombio.Biomarker, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get biomarker: %w", err)
	}
	return b, nil
}

// Update replaces the editable fields. A nil Raw keeps the stored columns.
func (s *Service) Update(ctx context.Context, id string, in Input) (*dombio.Biomarker, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get biomarker: %w", err)
	}
	raw := in.Raw
	if raw == nil {
		raw = existing.Raw
	}
	b, err := dombio.New(existing.ID, in.Name, in.Manifestation, in.Prevalence, raw, existing.CreatedAt)
	if err != nil {
		return nil, err //nolint:wrapcheck // domain validation error
	}
	b.UpdatedAt = s.now().UTC()
	if err := s.repo.Replace(ctx, &b); err != nil {
		return nil, fmt.Errorf("replace biomarker: %w", err)
	}
	return &b, nil
}

// Delete removes a biomarker.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete biomarker: %w", err)
	}
	return nil
}

// Import inserts rows best-effort. Every original column is kept in Raw.
func (s *Service) Import(ctx context.Context, rows []map[string]string) batch.Summary {
	now := s.now().UTC()
	results := make([]batch.Result, len(rows))
	valid := make([]*dombio.Biomarker, 0, len(rows))
	pos := make([]int, 0, len(rows))

	for i, row := range rows {
		b, err := dombio.FromRow(s.newID(), row, now)
		if err != nil {
			results[i] = batch.NewError(i+1, "", err)
			continue
		}
		valid = append(valid, &b)
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
	metrics.ObserveImport("biomarkers", sum.Inserted, sum.Failed)
	logger.FromContext(ctx).Info("biomarkers imported",
		zap.Int("rows", len(rows)),
		zap.Int("inserted", sum.Inserted),
		zap.Int("failed", sum.Failed),
	)
	return sum
}

// Unique lists the distinct values of a catalog field; unknown fields are rejected.
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
