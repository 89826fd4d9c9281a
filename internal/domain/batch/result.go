package batch

import (
	"fmt"

	"github.com/aadb-project/aadb/internal/domain"
)

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of one row of a bulk write.
type Result struct {
	row    int
	id     string
	status ItemStatus
	err    error
}

// NewOK creates a successful row result.
func NewOK(row int, id string) Result { return Result{row: row, id: id, status: StatusOK} }

// NewError creates a failed row result.
func NewError(row int, id string, err error) Result {
	return Result{row: row, id: id, status: StatusError, err: err}
}

// Row returns the 1-based position of the item in its batch.
func (r Result) Row() int { return r.row }

// ID returns the item identifier ("" when the row failed before one was assigned).
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary counts a batch.
type Summary struct {
	Inserted int      `json:"inserted"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// Summarize counts results and collects per-row error messages.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.status == StatusOK {
			s.Inserted++
			continue
		}
		s.Failed++
		s.Errors = append(s.Errors, fmt.Sprintf("row %d: %v", r.row, r.err))
	}
	return s
}

// Err returns a *domain.PartialBatchError when any row failed, nil otherwise.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	return &domain.PartialBatchError{Inserted: s.Inserted, Failed: s.Failed, Errors: s.Errors}
}
