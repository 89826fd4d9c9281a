package batch

import (
	"errors"
	"testing"

	"github.com/aadb-project/aadb/internal/domain"
)

func TestNewOK(t *testing.T) {
	r := NewOK(1, "rec-1")
	if r.ID() != "rec-1" || r.Row() != 1 {
		t.Errorf("ID() = %q Row() = %d", r.ID(), r.Row())
	}
	if r.Status() != StatusOK {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusOK)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestNewError(t *testing.T) {
	err := errors.New("something failed")
	r := NewError(2, "", err)
	if r.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusError)
	}
	if !errors.Is(r.Err(), err) {
		t.Errorf("Err() = %v, want %v", r.Err(), err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Result{
		NewOK(1, "a"),
		NewError(2, "", domain.NewMissingFields("disease")),
		NewOK(3, "c"),
	})
	if s.Inserted != 2 || s.Failed != 1 {
		t.Fatalf("summary = %+v", s)
	}
	if len(s.Errors) != 1 || s.Errors[0] != "row 2: validation failed: missing required fields: disease" {
		t.Errorf("Errors = %v", s.Errors)
	}

	var pb *domain.PartialBatchError
	if err := s.Err(); !errors.As(err, &pb) || pb.Inserted != 2 || pb.Failed != 1 {
		t.Errorf("Err() = %v", err)
	}
	if !errors.Is(s.Err(), domain.ErrPartialBatch) {
		t.Error("Err() should wrap ErrPartialBatch")
	}
}

func TestSummarize_AllOK(t *testing.T) {
	if err := Summarize([]Result{NewOK(1, "a")}).Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}
