package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aadb-project/aadb/internal/domain"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
	"github.com/aadb-project/aadb/internal/domain/search/query"
	"github.com/aadb-project/aadb/internal/domain/search/rank"
	"github.com/aadb-project/aadb/internal/domain/search/relevance"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	"github.com/aadb-project/aadb/internal/domain/search/result"
	"github.com/aadb-project/aadb/internal/logger"
	"github.com/aadb-project/aadb/internal/metrics"
	"github.com/aadb-project/aadb/internal/repository/docstore"
)

// Item is a document the service can filter, rank and score.
type Item interface {
	rank.Item
}

// Service runs predicate → store → rank → window over one collection.
type Service[T Item] struct {
	repo       Repository[T]
	reg        field.Registry
	collection string
	lead       rank.Lead[T]
	scorer     *relevance.Scorer
	statFields [3]string
}

// New creates a search service for the collection behind repo. lead orders
// every listing before the requested sort field; nil sorts by the field alone.
func New[T Item](collection string, repo Repository[T], reg field.Registry, lead rank.Lead[T]) *Service[T] {
	return &Service[T]{repo: repo, reg: reg, collection: collection, lead: lead}
}

// WithRelevance enables Advanced. statFields name the fields counted distinctly
// in the statistics, in the order diseases, autoantibodies, autoantigens.
func (s *Service[T]) WithRelevance(scorer relevance.Scorer, statFields [3]string) *Service[T] {
	s.scorer = &scorer
	s.statFields = statFields
	return s
}

// Registry returns the field registry the service validates against.
func (s *Service[T]) Registry() field.Registry { return s.reg }

// List returns one ranked page of the documents matching the request.
func (s *Service[T]) List(ctx context.Context, req request.List) (result.Page[T], error) {
	return s.ListWhere(ctx, req, filter.All())
}

// ListWhere is List with an extra predicate ANDed in (e.g. visibility scopes).
func (s *Service[T]) ListWhere(ctx context.Context, req request.List, scope filter.Predicate) (result.Page[T], error) {
	pred := filter.And(query.Build(s.reg, req.Params()), scope)
	items, total, err := s.repo.Find(ctx, pred, s.findOptions(req, req.Skip(), req.Limit()))
	if err != nil {
		return result.Page[T]{}, fmt.Errorf("find %s: %w", s.collection, err)
	}
	metrics.ObserveSearch(s.collection, "list", total)
	logger.FromContext(ctx).Debug("ranked listing",
		zap.String("collection", s.collection),
		zap.Stringer("predicate", pred),
		zap.Int("total", total),
		zap.Int("page", req.Page()),
	)
	return result.NewPage(items, total, req.Page(), req.Limit()), nil
}

// Ranked returns every match in ranked order, capped at maxRows (<= 0 means no cap),
// plus the uncapped match count. The page window of req is ignored.
func (s *Service[T]) Ranked(ctx context.Context, req request.List, maxRows int) ([]T, int, error) {
	pred := query.Build(s.reg, req.Params())
	items, total, err := s.repo.Find(ctx, pred, s.findOptions(req, 0, maxRows))
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", s.collection, err)
	}
	metrics.ObserveSearch(s.collection, "export", total)
	return items, total, nil
}

// Advanced runs a weighted relevance search. Statistics, when requested, cover
// every match and are gathered concurrently with the hits.
func (s *Service[T]) Advanced(ctx context.Context, req request.Advanced) (result.Advanced[T], error) {
	if s.scorer == nil {
		return result.Advanced[T]{}, domain.NewInvalid("advanced search is not available for %s", s.collection)
	}
	pred := s.scorer.Predicate(req.Term())

	var (
		matches []T
		total   int
		stats   *result.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, total, err = s.repo.Find(gctx, pred, docstore.FindOptions[T]{})
		if err != nil {
			return fmt.Errorf("find %s: %w", s.collection, err)
		}
		return nil
	})
	if req.IncludeStats() {
		stats = &result.Stats{}
		targets := []*int{&stats.DistinctDiseases, &stats.DistinctAutoantibodies, &stats.DistinctAutoantigens}
		for i, name := range s.statFields {
			g.Go(func() error {
				values, err := s.repo.Distinct(gctx, name, pred)
				if err != nil {
					return fmt.Errorf("distinct %s.%s: %w", s.collection, name, err)
				}
				*targets[i] = len(values)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return result.Advanced[T]{}, err //nolint:wrapcheck // wrapped inside the group
	}
	if stats != nil {
		stats.Count = total
	}

	hits := relevance.Rank(*s.scorer, matches, req.Term(), req.Limit())
	metrics.ObserveSearch(s.collection, "advanced", total)
	return result.NewAdvanced(hits, len(hits), stats), nil
}

func (s *Service[T]) findOptions(req request.List, skip, limit int) docstore.FindOptions[T] {
	return docstore.FindOptions[T]{
		Compare: rank.Compare(s.lead, req.SortField(), req.Direction()),
		Skip:    skip,
		Limit:   limit,
	}
}
