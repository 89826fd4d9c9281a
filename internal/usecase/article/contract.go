package article

import (
	"context"

	domart "github.com/aadb-project/aadb/internal/domain/article"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	"github.com/aadb-project/aadb/internal/domain/search/result"
	"github.com/aadb-project/aadb/internal/repository/docstore"
)

// Repository defines the storage contract for articles.
type Repository interface {
	Get(ctx context.Context, id string) (*domart.Article, error)
	Insert(ctx context.Context, a *domart.Article) error
	Replace(ctx context.Context, a *domart.Article) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, pred filter.Predicate, opts docstore.FindOptions[*domart.Article]) (
		[]*domart.Article, int, error,
	)
}

// Counters keeps view and like counts outside the article document.
type Counters interface {
	Incr(ctx context.Context, id, name string) (int64, error)
	Value(ctx context.Context, id, name string) (int64, error)
	Drop(ctx context.Context, id string, names ...string) error
}

// Lister runs ranked, scoped article listings.
type Lister interface {
	ListWhere(ctx context.Context, req request.List, scope filter.Predicate) (result.Page[*domart.Article], error)
}
