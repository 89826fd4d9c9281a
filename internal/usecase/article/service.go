package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aadb-project/aadb/internal/domain"
	domart "github.com/aadb-project/aadb/internal/domain/article"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
	"github.com/aadb-project/aadb/internal/domain/search/query"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	"github.com/aadb-project/aadb/internal/domain/search/result"
	"github.com/aadb-project/aadb/internal/logger"
	"github.com/aadb-project/aadb/internal/repository/docstore"
)

// Counter names.
const (
	CounterViews = "views"
	CounterLikes = "likes"
)

// ListInput selects articles for a listing.
type ListInput struct {
	Search string
	Type   string
	Status string
	Page   int
	Limit  int
}

// Service handles article publishing.
type Service struct {
	repo     Repository
	counters Counters
	lister   Lister
	limits   request.Limits
	now      func() time.Time
	newID    func() string
}

// New creates an article service.
func New(repo Repository, counters Counters, lister Lister) *Service {
	return &Service{repo: repo, counters: counters, lister: lister, now: time.Now, newID: uuid.NewString}
}

// WithLimits configures page size limits.
func (s *Service) WithLimits(lim request.Limits) *Service {
	s.limits = lim
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create stores a new article. The author defaults to the actor; slugs must be unique.
func (s *Service) Create(ctx context.Context, actor domain.Actor, in domart.Input) (*domart.Article, error) {
	if in.Author == "" {
		in.Author = actor.User
	}
	a, err := domart.New(s.newID(), in, s.now().UTC())
	if err != nil {
		return nil, err //nolint:wrapcheck // domain validation error
	}
	if err := s.ensureSlugFree(ctx, a.Slug, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, &a); err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	logger.FromContext(ctx).Info("article created", zap.String("article_id", a.ID), zap.String("slug", a.Slug))
	return &a, nil
}

// Update replaces the editable fields of an article.
func (s *Service) Update(ctx context.Context, id string, in domart.Input) (*domart.Article, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if err := a.Update(in, s.now().UTC()); err != nil {
		return nil, err //nolint:wrapcheck // domain validation error
	}
	if err := s.ensureSlugFree(ctx, a.Slug, a.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, a); err != nil {
		return nil, fmt.Errorf("replace article: %w", err)
	}
	return s.withCounters(ctx, a)
}

// Delete removes an article and its counters.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if err := s.counters.Drop(ctx, id, CounterViews, CounterLikes); err != nil {
		logger.FromContext(ctx).Warn("article counters left behind", zap.String("article_id", id), zap.Error(err))
	}
	return nil
}

// Publish makes an article public.
func (s *Service) Publish(ctx context.Context, actor domain.Actor, id string) (*domart.Article, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if err := a.Publish(actor.User, s.now().UTC()); err != nil {
		return nil, err //nolint:wrapcheck // domain error
	}
	if err := s.repo.Replace(ctx, a); err != nil {
		return nil, fmt.Errorf("replace article: %w", err)
	}
	return s.withCounters(ctx, a)
}

// Archive hides an article from public listings.
func (s *Service) Archive(ctx context.Context, id string) (*domart.Article, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	a.Archive(s.now().UTC())
	if err := s.repo.Replace(ctx, a); err != nil {
		return nil, fmt.Errorf("replace article: %w", err)
	}
	return s.withCounters(ctx, a)
}

// Read returns an article by slug and counts the view. Non-admins only see published articles.
func (s *Service) Read(ctx context.Context, actor domain.Actor, slug string) (*domart.Article, error) {
	a, err := s.bySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !a.IsPublic() && !actor.IsAdmin() {
		return nil, fmt.Errorf("article %s: %w", slug, domain.ErrNotFound)
	}
	views, err := s.counters.Incr(ctx, a.ID, CounterViews)
	if err != nil {
		return nil, fmt.Errorf("count view: %w", err)
	}
	a.Views = views
	if a.Likes, err = s.counters.Value(ctx, a.ID, CounterLikes); err != nil {
		return nil, fmt.Errorf("read likes: %w", err)
	}
	return a, nil
}

// Like counts a like on a published article and returns the new total.
func (s *Service) Like(ctx context.Context, id string) (int64, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("get article: %w", err)
	}
	if !a.IsPublic() {
		return 0, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	n, err := s.counters.Incr(ctx, id, CounterLikes)
	if err != nil {
		return 0, fmt.Errorf("count like: %w", err)
	}
	return n, nil
}

// List returns a page of articles, most recently published first.
// Non-admins only ever see published articles, whatever status they ask for.
func (s *Service) List(ctx context.Context, actor domain.Actor, in ListInput) (result.Page[*domart.Article], error) {
	params := query.Params{
		Search:  in.Search,
		Field:   field.All,
		Filters: map[string]string{"type": in.Type, "status": in.Status},
	}
	req := request.NewList(field.Articles(), params, "title", "asc", in.Page, in.Limit, s.limits)

	scope := filter.All()
	if !actor.IsAdmin() {
		scope = filter.Match(filter.Exact("status", string(domart.Published)))
	}
	page, err := s.lister.ListWhere(ctx, req, scope)
	if err != nil {
		return result.Page[*domart.Article]{}, fmt.Errorf("list articles: %w", err)
	}
	for _, a := range page.Items() {
		if _, err := s.withCounters(ctx, a); err != nil {
			return result.Page[*domart.Article]{}, err
		}
	}
	return page, nil
}

func (s *Service) bySlug(ctx context.Context, slug string) (*domart.Article, error) {
	found, _, err := s.repo.Find(ctx, filter.Match(filter.Exact("slug", slug)), docstore.FindOptions[*domart.Article]{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("find article: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("article %s: %w", slug, domain.ErrNotFound)
	}
	return found[0], nil
}

func (s *Service) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	a, err := s.bySlug(ctx, slug)
	switch {
	case err == nil && a.ID != selfID:
		return fmt.Errorf("slug %q: %w", slug, domain.ErrAlreadyExists)
	case err == nil, isNotFound(err):
		return nil
	default:
		return err
	}
}

func (s *Service) withCounters(ctx context.Context, a *domart.Article) (*domart.Article, error) {
	var err error
	if a.Views, err = s.counters.Value(ctx, a.ID, CounterViews); err != nil {
		return nil, fmt.Errorf("read views: %w", err)
	}
	if a.Likes, err = s.counters.Value(ctx, a.ID, CounterLikes); err != nil {
		return nil, fmt.Errorf("read likes: %w", err)
	}
	return a, nil
}

func isNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
