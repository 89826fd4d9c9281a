package result

// Page is one window of a ranked listing.
type Page[T any] struct {
	items []T
	total int
	page  int
	limit int
}

// NewPage creates a page. total counts every match, independent of the window.
func NewPage[T any](items []T, total, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{items: items, total: total, page: page, limit: limit}
}

// Items returns the records in the window.
func (p *Page[T]) Items() []T { return p.items }

// Total returns the number of matches.
func (p *Page[T]) Total() int { return p.total }

// Page returns the 1-based page number.
func (p *Page[T]) Page() int { return p.page }

// Limit returns the page size.
func (p *Page[T]) Limit() int { return p.limit }

// TotalPages returns ceil(total/limit).
func (p *Page[T]) TotalPages() int {
	if p.limit <= 0 {
		return 0
	}
	return (p.total + p.limit - 1) / p.limit
}

// Scored is an advanced search hit.
type Scored[T any] struct {
	item  T
	score int
}

// NewScored creates a scored hit.
func NewScored[T any](item T, score int) Scored[T] {
	return Scored[T]{item: item, score: score}
}

// Item returns the matched document.
func (s *Scored[T]) Item() T { return s.item }

// Score returns the summed field weights.
func (s *Scored[T]) Score() int { return s.score }

// Stats aggregates every advanced search match, not only the returned window.
type Stats struct {
	Count                  int
	DistinctDiseases       int
	DistinctAutoantibodies int
	DistinctAutoantigens   int
}

// Advanced is the outcome of a relevance search.
type Advanced[T any] struct {
	hits  []Scored[T]
	count int
	stats *Stats
}

// NewAdvanced creates an advanced search outcome. stats is nil when not requested.
func NewAdvanced[T any](hits []Scored[T], count int, stats *Stats) Advanced[T] {
	if hits == nil {
		hits = []Scored[T]{}
	}
	return Advanced[T]{hits: hits, count: count, stats: stats}
}

// Hits returns the capped, ranked hits.
func (a *Advanced[T]) Hits() []Scored[T] { return a.hits }

// Count returns the number of returned hits.
func (a *Advanced[T]) Count() int { return a.count }

// Stats returns the aggregate statistics, or nil.
func (a *Advanced[T]) Stats() *Stats { return a.stats }
