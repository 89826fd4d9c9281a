package aadb

import (
	"context"
	"fmt"
	"io"

	"github.com/aadb-project/aadb/internal/domain/batch"
	dombio "github.com/aadb-project/aadb/internal/domain/biomarker"
)

const collectionBiomarkers = "biomarkers"

// BiomarkerService reads, searches and bulk-loads biomarkers.
type BiomarkerService struct {
	svc    biomarkerUseCase
	search searcher[*dombio.Biomarker]
	obs    *observer
}

// Get returns one biomarker by id.
func (s *BiomarkerService) Get(ctx context.Context, id string) (_ *Biomarker, err error) {
	c := begin(collectionBiomarkers, "get")
	defer func() { s.obs.finish(c, err) }()

	b, err := s.svc.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get biomarker: %w", err)
	}
	c.rows = 1
	return b, nil
}

// List returns one page of biomarkers.
func (s *BiomarkerService) List(ctx context.Context, q ListQuery) (_ Page[*Biomarker], err error) {
	c := begin(collectionBiomarkers, "list")
	defer func() { s.obs.finish(c, err) }()

	page, err := s.search.List(ctx, q.request(s.search.Registry()))
	if err != nil {
		return Page[*Biomarker]{}, fmt.Errorf("list biomarkers: %w", err)
	}
	c.rows = len(page.Items())
	return newPage(page), nil
}

// Import inserts rows best-effort.
func (s *BiomarkerService) Import(ctx context.Context, rows []map[string]string) ImportSummary {
	c := begin(collectionBiomarkers, "import")
	sum := s.svc.Import(ctx, rows)
	c.rows, c.failed = sum.Inserted, sum.Failed
	s.obs.finish(c, sum.Err())
	return sum
}

// ImportCSV reads a CSV document with a header row and imports it.
func (s *BiomarkerService) ImportCSV(ctx context.Context, r io.Reader) (ImportSummary, error) {
	rows, err := batch.ReadCSV(r)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("import biomarkers: %w", err)
	}
	return s.Import(ctx, rows), nil
}
