package rank

import (
	"cmp"
	"strings"

	"github.com/aadb-project/aadb/internal/domain/search/order"
)

// Item is anything a ranked listing can order.
type Item interface {
	FieldValue(name string) string
	DocID() string
}

// Prioritized items carry an editorial priority that outranks any requested sort.
type Prioritized interface {
	Item
	SortKey() float64
}

// Lead is the ordering applied before the requested sort field.
type Lead[T any] func(a, b T) int

// ByPriority orders higher sort keys first.
func ByPriority[T Prioritized](a, b T) int {
	return cmp.Compare(b.SortKey(), a.SortKey())
}

// Compare returns the ordering shared by every ranked listing: lead first,
// then sortField in dir (case-insensitive, raw value breaks ties), then id
// ascending. A nil lead orders by the field alone.
func Compare[T Item](lead Lead[T], sortField string, dir order.Direction) func(a, b T) int {
	return func(a, b T) int {
		if lead != nil {
			if c := lead(a, b); c != 0 {
				return c
			}
		}
		if c := dir.Apply(compareText(a.FieldValue(sortField), b.FieldValue(sortField))); c != 0 {
			return c
		}
		return strings.Compare(a.DocID(), b.DocID())
	}
}

func compareText(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
