package relevance

import (
	"cmp"
	"slices"
	"strings"

	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
	"github.com/aadb-project/aadb/internal/domain/search/result"
)

// Weight is the score contributed by one matching field.
type Weight struct {
	Field  string
	Points int
}

// Document is a scorable record.
type Document interface {
	filter.Fields
	DocID() string
}

// Scorer ranks free-text matches by which fields they hit.
type Scorer struct {
	weights []Weight
	tieBy   string
}

// New creates a scorer. tieBy names the field that breaks equal scores (ascending).
func New(tieBy string, weights ...Weight) Scorer {
	return Scorer{weights: weights, tieBy: tieBy}
}

// Records returns the record scorer.
func Records() Scorer {
	return New(field.Disease,
		Weight{field.Disease, 10},
		Weight{field.Autoantibody, 8},
		Weight{field.Autoantigen, 6},
		Weight{field.DiagnosticMarker, 5},
		Weight{field.Epitope, 4},
		Weight{field.DiseaseAssociation, 3},
		Weight{field.PathogenesisInvolvement, 3},
		Weight{field.UniprotID, 2},
		Weight{field.Reference, 1},
	)
}

// Predicate matches documents where any weighted field contains term.
func (s Scorer) Predicate(term string) filter.Predicate {
	clauses := make([]filter.Predicate, 0, len(s.weights))
	for _, w := range s.weights {
		clauses = append(clauses, filter.Match(filter.Contains(w.Field, term)))
	}
	return filter.Or(clauses...)
}

// Score sums the weights of the fields containing term. Absent fields add 0.
func (s Scorer) Score(doc filter.Fields, term string) int {
	total := 0
	for _, w := range s.weights {
		if filter.Contains(w.Field, term).Matches(doc.FieldValue(w.Field)) {
			total += w.Points
		}
	}
	return total
}

// Rank scores docs, sorts by score descending then the tie field ascending then id,
// and keeps at most limit hits. limit <= 0 keeps all.
func Rank[T Document](s Scorer, docs []T, term string, limit int) []result.Scored[T] {
	hits := make([]result.Scored[T], 0, len(docs))
	for _, d := range docs {
		hits = append(hits, result.NewScored(d, s.Score(d, term)))
	}
	slices.SortStableFunc(hits, func(a, b result.Scored[T]) int {
		if c := cmp.Compare(b.Score(), a.Score()); c != 0 {
			return c
		}
		ai, bi := a.Item(), b.Item()
		if c := strings.Compare(strings.ToLower(ai.FieldValue(s.tieBy)), strings.ToLower(bi.FieldValue(s.tieBy))); c != 0 {
			return c
		}
		return strings.Compare(ai.DocID(), bi.DocID())
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
