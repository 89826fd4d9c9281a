// Package dashboard gathers the admin overview counts.
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aadb-project/aadb/internal/domain/article"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
	"github.com/aadb-project/aadb/internal/domain/submission"
)

// Counter counts documents matching a predicate.
type Counter interface {
	Count(ctx context.Context, pred filter.Predicate) (int, error)
}

// Counts is the admin overview.
type Counts struct {
	Records            int `json:"records"`
	PendingSubmissions int `json:"pendingSubmissions"`
	Biomarkers         int `json:"biomarkers"`
	PublishedArticles  int `json:"publishedArticles"`
}

// Service reads the overview from every collection.
type Service struct {
	records, submissions, biomarkers, articles Counter
}

// New creates a dashboard service.
func New(records, submissions, biomarkers, articles Counter) *Service {
	return &Service{records: records, submissions: submissions, biomarkers: biomarkers, articles: articles}
}

// Counts runs the four counts concurrently.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	var out Counts
	g, ctx := errgroup.WithContext(ctx)
	count := func(name string, c Counter, pred filter.Predicate, dst *int) {
		g.Go(func() error {
			n, err := c.Count(ctx, pred)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	count("records", s.records, filter.All(), &out.Records)
	count("submissions", s.submissions,
		filter.Match(filter.Exact("status", string(submission.Pending))), &out.PendingSubmissions)
	count("biomarkers", s.biomarkers, filter.All(), &out.Biomarkers)
	count("articles", s.articles,
		filter.Match(filter.Exact("status", string(article.Published))), &out.PublishedArticles)

	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return out, nil
}
