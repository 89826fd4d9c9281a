package query

import (
	"slices"
	"strings"

	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
)

// Params are the raw, unvalidated query inputs of a listing.
type Params struct {
	// Search is the free-text term. Blank disables the search clause.
	Search string
	// Field is "all" or one registry field. Empty or unknown means "all".
	Field string
	// Filters maps field name to filter value. Unknown names and blank values are ignored.
	Filters map[string]string
}

// Build turns params into a predicate: (search clause) AND filter_1 AND ... AND filter_n.
// It never fails and is deterministic for identical inputs.
func Build(reg field.Registry, p Params) filter.Predicate {
	clauses := make([]filter.Predicate, 0, len(p.Filters)+1)
	clauses = append(clauses, Search(reg, p.Search, p.Field))

	// Registry order keeps the tree stable regardless of map iteration.
	for _, f := range reg.Fields() {
		v := strings.TrimSpace(p.Filters[f.Name()])
		if v == "" {
			continue
		}
		clauses = append(clauses, filter.Match(condition(f.Name(), v, f.FilterMode())))
	}
	return filter.And(clauses...)
}

// Search builds the free-text clause alone. A blank term yields the empty predicate.
func Search(reg field.Registry, term, selector string) filter.Predicate {
	term = strings.TrimSpace(term)
	if term == "" {
		return filter.All()
	}

	if f, ok := reg.Lookup(selector); ok {
		clauses := []filter.Predicate{filter.Match(condition(f.Name(), term, f.SearchMode()))}
		clauses = append(clauses, synonymClauses(reg, term, f.Name())...)
		return filter.Or(clauses...)
	}

	fields := reg.Fields()
	clauses := make([]filter.Predicate, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, filter.Match(condition(f.Name(), term, f.SearchMode())))
	}
	clauses = append(clauses, synonymClauses(reg, term, "")...)
	return filter.Or(clauses...)
}

// synonymClauses returns the extra matches of every triggered rule. When only is
// set, rules targeting a different field are skipped.
func synonymClauses(reg field.Registry, term, only string) []filter.Predicate {
	lower := strings.ToLower(term)
	var out []filter.Predicate
	for _, s := range reg.Synonyms() {
		if only != "" && s.Field != only {
			continue
		}
		if !triggered(s, lower) {
			continue
		}
		for _, t := range s.Terms {
			out = append(out, filter.Match(filter.Contains(s.Field, t)))
		}
	}
	return out
}

func triggered(s field.Synonyms, lower string) bool {
	if slices.Contains(s.ExactTriggers, lower) {
		return true
	}
	for _, t := range s.Triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func condition(key, literal string, m filter.Mode) filter.Condition {
	if m == filter.ModeExact {
		return filter.Exact(key, literal)
	}
	return filter.Contains(key, literal)
}
