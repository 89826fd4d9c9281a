package submission

import (
	"fmt"
	"strings"
	"time"

	"github.com/aadb-project/aadb/internal/domain"
	"github.com/aadb-project/aadb/internal/domain/record"
)

// Status is the moderation state.
type Status string

// Moderation states. Approved and Rejected are terminal.
const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Rejected Status = "rejected"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == Pending || s == Approved || s == Rejected
}

// Terminal reports whether no further review is allowed.
func (s Status) Terminal() bool { return s == Approved || s == Rejected }

// ParseStatus reads an optional status filter. Empty means any status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st == "" || st.IsValid() {
		return st, nil
	}
	return "", domain.NewInvalid("unknown submission status %q", s)
}

// Submission is a user-proposed record awaiting moderation.
type Submission struct {
	ID          string        `json:"id"`
	Draft       record.Record `json:"draft"`
	SubmittedBy string        `json:"submittedBy"`
	Status      Status        `json:"status"`
	ReviewedBy  string        `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time    `json:"reviewedAt,omitempty"`
	ReviewNote  string        `json:"reviewNote,omitempty"`
	RecordID    string        `json:"recordId,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// New validates the draft and creates a pending submission.
func New(id, submittedBy string, draft record.Record, now time.Time) (Submission, error) {
	if submittedBy == "" {
		return Submission{}, domain.NewMissingFields("submittedBy")
	}
	draft.Trim()
	if err := draft.Validate(); err != nil {
		return Submission{}, err
	}
	draft.ID = ""
	return Submission{
		ID:          id,
		Draft:       draft,
		SubmittedBy: submittedBy,
		Status:      Pending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// FieldValue exposes the draft fields plus the workflow fields to predicates.
func (s *Submission) FieldValue(name string) string {
	switch name {
	case "status":
		return string(s.Status)
	case "submittedBy":
		return s.SubmittedBy
	case "reviewedBy":
		return s.ReviewedBy
	default:
		return s.Draft.FieldValue(name)
	}
}

// NewestFirst orders submissions by creation time, newest first, then by id.
func NewestFirst(a, b *Submission) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// DocID returns the submission identifier.
func (s *Submission) DocID() string { return s.ID }

// OwnedBy reports whether user submitted it.
func (s *Submission) OwnedBy(user string) bool { return s.SubmittedBy == user }

// Edit replaces the draft. Only pending submissions can be edited.
func (s *Submission) Edit(draft record.Record, now time.Time) error {
	if s.Status != Pending {
		return fmt.Errorf("edit %s submission: %w", s.Status, domain.ErrAlreadyReviewed)
	}
	draft.Trim()
	if err := draft.Validate(); err != nil {
		return err
	}
	draft.ID = ""
	s.Draft = draft
	s.UpdatedAt = now
	return nil
}

// Approve marks the submission approved and returns the record to materialize.
// Terminal submissions cannot be reviewed again.
func (s *Submission) Approve(reviewer, note, recordID string, now time.Time) (record.Record, error) {
	if err := s.review(Approved, reviewer, note, now); err != nil {
		return record.Record{}, err
	}
	s.RecordID = recordID

	rec := s.Draft.Clone()
	rec.ID = recordID
	rec.Metadata = record.Metadata{
		Source:      "submission",
		CreatedAt:   now,
		UpdatedAt:   now,
		Verified:    true,
		DataVersion: s.Draft.Metadata.DataVersion,
	}
	return rec, nil
}

// Reject marks the submission rejected. No record is created.
func (s *Submission) Reject(reviewer, note string, now time.Time) error {
	return s.review(Rejected, reviewer, note, now)
}

func (s *Submission) review(to Status, reviewer, note string, now time.Time) error {
	if s.Status.Terminal() {
		return fmt.Errorf("%s %s submission %s: %w", to, s.Status, s.ID, domain.ErrAlreadyReviewed)
	}
	s.Status = to
	s.ReviewedBy = reviewer
	s.ReviewNote = note
	reviewedAt := now
	s.ReviewedAt = &reviewedAt
	s.UpdatedAt = now
	return nil
}
