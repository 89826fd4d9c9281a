package request

import (
	"strings"
	"unicode/utf8"

	"github.com/aadb-project/aadb/internal/domain"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/order"
	"github.com/aadb-project/aadb/internal/domain/search/query"
)

// Fallback limits, used when the configured ones are unset.
const (
	DefaultLimit         = 20
	MaxLimit             = 10000
	DefaultAdvancedLimit = 100
	MaxAdvancedLimit     = 500
	// MinTermLength is the shortest advanced search term, in characters.
	MinTermLength = 2
)

// Limits bounds a page size.
type Limits struct {
	Default int
	Max     int
}

func (l Limits) withFallback(def, limitMax int) Limits {
	if l.Max <= 0 {
		l.Max = limitMax
	}
	if l.Default <= 0 {
		l.Default = def
	}
	if l.Default > l.Max {
		l.Default = l.Max
	}
	return l
}

// clamp: 0 (unset) → default, negative → 1, above max → max.
func (l Limits) clamp(limit int) int {
	switch {
	case limit == 0:
		return l.Default
	case limit < 1:
		return 1
	case limit > l.Max:
		return l.Max
	default:
		return limit
	}
}

// Window normalizes a page/limit pair the way NewList does.
func Window(page, limit int, lim Limits) (int, int) {
	if page < 1 {
		page = 1
	}
	return page, lim.withFallback(DefaultLimit, MaxLimit).clamp(limit)
}

// List is a validated ranked listing query.
type List struct {
	params    query.Params
	sortField string
	direction order.Direction
	page      int
	limit     int
}

// NewList normalizes listing parameters. It never fails: an unknown sort field
// falls back to the registry's first field, page floors at 1 and limit is clamped.
func NewList(
	reg field.Registry,
	params query.Params,
	sortField, direction string,
	page, limit int,
	lim Limits,
) List {
	lim = lim.withFallback(DefaultLimit, MaxLimit)
	if !reg.Has(sortField) {
		sortField = ""
		if names := reg.Names(); len(names) > 0 {
			sortField = names[0]
		}
	}
	if page < 1 {
		page = 1
	}
	return List{
		params:    params,
		sortField: sortField,
		direction: order.Parse(direction),
		page:      page,
		limit:     lim.clamp(limit),
	}
}

// Params returns the search and filter inputs.
func (r *List) Params() query.Params { return r.params }

// SortField returns the secondary sort field.
func (r *List) SortField() string { return r.sortField }

// Direction returns the secondary sort direction.
func (r *List) Direction() order.Direction { return r.direction }

// Page returns the 1-based page number.
func (r *List) Page() int { return r.page }

// Limit returns the page size.
func (r *List) Limit() int { return r.limit }

// Skip returns the number of ranked items before the page window.
func (r *List) Skip() int { return (r.page - 1) * r.limit }

// Advanced is a validated relevance search query.
type Advanced struct {
	term         string
	limit        int
	includeStats bool
}

// NewAdvanced validates the term (trimmed, at least MinTermLength characters) and clamps limit.
func NewAdvanced(term string, limit int, includeStats bool, lim Limits) (Advanced, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < MinTermLength {
		return Advanced{}, domain.NewInvalid("search term must be at least %d characters", MinTermLength)
	}
	lim = lim.withFallback(DefaultAdvancedLimit, MaxAdvancedLimit)
	return Advanced{term: term, limit: lim.clamp(limit), includeStats: includeStats}, nil
}

// Term returns the trimmed search term.
func (r *Advanced) Term() string { return r.term }

// Limit returns the result cap.
func (r *Advanced) Limit() int { return r.limit }

// IncludeStats reports whether aggregate statistics were requested.
func (r *Advanced) IncludeStats() bool { return r.includeStats }
