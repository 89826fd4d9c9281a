package aadb

import (
	"context"
	"fmt"
	"io"

	"github.com/aadb-project/aadb/internal/domain/batch"
	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	recorduc "github.com/aadb-project/aadb/internal/usecase/record"
)

const collectionRecords = "records"

// RecordService reads, searches and bulk-loads records.
type RecordService struct {
	svc    recordUseCase
	search searcher[*domrec.Record]
	obs    *observer
}

// Get returns one record by id.
func (s *RecordService) Get(ctx context.Context, id string) (_ *Record, err error) {
	c := begin(collectionRecords, "get")
	defer func() { s.obs.finish(c, err) }()

	rec, err := s.svc.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	c.rows = 1
	return rec, nil
}

// List returns one ranked page. Priority always orders first, then q.Sort.
func (s *RecordService) List(ctx context.Context, q ListQuery) (_ Page[*Record], err error) {
	c := begin(collectionRecords, "list")
	defer func() { s.obs.finish(c, err) }()

	page, err := s.search.List(ctx, q.request(s.search.Registry()))
	if err != nil {
		return Page[*Record]{}, fmt.Errorf("list records: %w", err)
	}
	c.rows = len(page.Items())
	return newPage(page), nil
}

// Advanced runs a weighted relevance search for term.
func (s *RecordService) Advanced(ctx context.Context, term string, limit int, withStats bool) (_ AdvancedResult, err error) {
	c := begin(collectionRecords, "advanced")
	defer func() { s.obs.finish(c, err) }()

	req, err := request.NewAdvanced(term, limit, withStats, request.Limits{})
	if err != nil {
		return AdvancedResult{}, fmt.Errorf("advanced search: %w", err)
	}
	res, err := s.search.Advanced(ctx, req)
	if err != nil {
		return AdvancedResult{}, fmt.Errorf("advanced search: %w", err)
	}

	hits := res.Hits()
	out := AdvancedResult{Hits: make([]Hit, len(hits)), Count: res.Count(), Stats: res.Stats()}
	for i := range hits {
		out.Hits[i] = Hit{Score: hits[i].Score(), Record: hits[i].Item()}
	}
	c.rows = len(hits)
	return out, nil
}

// Import inserts rows best-effort. Column names follow the import aliases
// ("Disease Name", "Antibody", "UniProt ID", ...). Invalid rows are reported, not fatal.
func (s *RecordService) Import(ctx context.Context, rows []map[string]string) ImportSummary {
	c := begin(collectionRecords, "import")
	sum := s.svc.Import(ctx, rows, recorduc.SourceImport)
	c.rows, c.failed = sum.Inserted, sum.Failed
	s.obs.finish(c, sum.Err())
	return sum
}

// ImportCSV reads a CSV document with a header row and imports it.
func (s *RecordService) ImportCSV(ctx context.Context, r io.Reader) (ImportSummary, error) {
	rows, err := batch.ReadCSV(r)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("import records: %w", err)
	}
	return s.Import(ctx, rows), nil
}

// Export writes every record matching q (page window ignored) to w as JSON or CSV
// and returns the number written.
func (s *RecordService) Export(ctx context.Context, w io.Writer, format string, q ListQuery) (_ int, err error) {
	c := begin(collectionRecords, "export")
	defer func() { s.obs.finish(c, err) }()

	format, err = recorduc.ParseFormat(format)
	if err != nil {
		return 0, fmt.Errorf("export records: %w", err)
	}
	n, err := s.svc.Export(ctx, w, format, q.request(s.search.Registry()))
	c.rows = n
	if err != nil {
		return n, fmt.Errorf("export records: %w", err)
	}
	return n, nil
}

// Stats returns collection-wide counts.
func (s *RecordService) Stats(ctx context.Context) (_ recorduc.Stats, err error) {
	c := begin(collectionRecords, "stats")
	defer func() { s.obs.finish(c, err) }()

	st, err := s.svc.Stats(ctx)
	if err != nil {
		return recorduc.Stats{}, fmt.Errorf("record stats: %w", err)
	}
	return st, nil
}
