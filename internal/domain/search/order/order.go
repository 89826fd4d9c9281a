package order

import "strings"

// Direction is the requested sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// Parse reads a direction case-insensitively. Anything unrecognized is Asc.
func Parse(s string) Direction {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Desc, "-1", "descending":
		return Desc
	default:
		return Asc
	}
}

// Apply flips a comparison result for Desc.
func (d Direction) Apply(cmp int) int {
	if d == Desc {
		return -cmp
	}
	return cmp
}
