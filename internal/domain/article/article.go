package article

import (
	"fmt"
	"strings"
	"time"

	"github.com/aadb-project/aadb/internal/domain"
)

// Status is the publishing state.
type Status string

// Publishing states.
const (
	Draft       Status = "draft"
	Published   Status = "published"
	Archived    Status = "archived"
	UnderReview Status = "under-review"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == Draft || s == Published || s == Archived || s == UnderReview
}

// Article is a published or draft piece of editorial content.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Type        string     `json:"type,omitempty"`
	Author      string     `json:"author,omitempty"`
	Status      Status     `json:"status"`
	PublishedBy string     `json:"publishedBy,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Views       int64      `json:"views"`
	Likes       int64      `json:"likes"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Input holds the fields an editor supplies.
type Input struct {
	Title   string
	Slug    string
	Content string
	Type    string
	Author  string
	Status  Status
}

// New validates input and creates an article. The slug is derived from the
// title when absent; status defaults to draft.
func New(id string, in Input, now time.Time) (Article, error) {
	a := Article{ID: id, CreatedAt: now}
	if err := a.apply(in, now); err != nil {
		return Article{}, err
	}
	return a, nil
}

// Update replaces the editable fields. Publishing metadata is kept.
func (a *Article) Update(in Input, now time.Time) error {
	if in.Status == "" {
		in.Status = a.Status
	}
	return a.apply(in, now)
}

func (a *Article) apply(in Input, now time.Time) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.NewMissingFields("title")
	}
	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return domain.NewInvalid("cannot derive a slug from title %q", title)
	}
	status := in.Status
	if status == "" {
		status = Draft
	}
	if !status.IsValid() {
		return domain.NewInvalid("unknown article status %q", in.Status)
	}

	a.Title = title
	a.Slug = slug
	a.Content = in.Content
	a.Type = strings.TrimSpace(in.Type)
	a.Author = strings.TrimSpace(in.Author)
	a.Status = status
	a.UpdatedAt = now
	return nil
}

// Publish makes the article public.
func (a *Article) Publish(by string, now time.Time) error {
	if a.Status == Published {
		return fmt.Errorf("publish article %s: %w", a.ID, domain.ErrAlreadyExists)
	}
	a.Status = Published
	a.PublishedBy = by
	published := now
	a.PublishedAt = &published
	a.UpdatedAt = now
	return nil
}

// Archive hides the article from public listings.
func (a *Article) Archive(now time.Time) {
	a.Status = Archived
	a.UpdatedAt = now
}

// IsPublic reports whether anonymous readers may see it.
func (a *Article) IsPublic() bool { return a.Status == Published }

// FieldValue returns an article field by name.
func (a *Article) FieldValue(name string) string {
	switch name {
	case "title":
		return a.Title
	case "slug":
		return a.Slug
	case "content":
		return a.Content
	case "type":
		return a.Type
	case "author":
		return a.Author
	case "status":
		return string(a.Status)
	default:
		return ""
	}
}

// NewestFirst orders the most recently published (or, for drafts, created)
// articles first.
func NewestFirst(a, b *Article) int {
	return b.shownAt().Compare(a.shownAt())
}

func (a *Article) shownAt() time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

// DocID returns the article identifier.
func (a *Article) DocID() string { return a.ID }
