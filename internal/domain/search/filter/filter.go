package filter

import (
	"regexp"
	"strings"
)

// Mode is the string matching mode of a condition.
type Mode int

const (
	// ModeContains matches values containing the literal, case-insensitively.
	ModeContains Mode = iota
	// ModeExact matches values equal to the literal, case-insensitively.
	ModeExact
	// ModeEqual matches values byte-for-byte equal to the literal. It is used
	// for identities such as owners, never for user-facing filters.
	ModeEqual
)

func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeEqual:
		return "equal"
	default:
		return "contains"
	}
}

// Op is the node kind of a predicate tree.
type Op int

// Predicate node kinds.
const (
	OpAll Op = iota
	OpMatch
	OpAnd
	OpOr
)

// Fields exposes string field values of a stored document.
// Absent fields report "".
type Fields interface {
	FieldValue(name string) string
}

// Condition is a single case-insensitive regex match on one field.
type Condition struct {
	key     string
	literal string
	mode    Mode
}

// Contains creates a case-insensitive substring condition.
func Contains(key, literal string) Condition {
	return Condition{key: key, literal: literal, mode: ModeContains}
}

// Exact creates a case-insensitive full-string condition.
func Exact(key, literal string) Condition {
	return Condition{key: key, literal: literal, mode: ModeExact}
}

// Equal creates a case-sensitive full-string condition.
func Equal(key, literal string) Condition {
	return Condition{key: key, literal: literal, mode: ModeEqual}
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Mode returns the matching mode.
func (c Condition) Mode() Mode { return c.mode }

// Pattern returns the regex source. Metacharacters in the literal are escaped;
// non-ASCII letters are left as-is.
func (c Condition) Pattern() string {
	escaped := regexp.QuoteMeta(c.literal)
	switch c.mode {
	case ModeExact:
		return "(?i)^" + escaped + "$"
	case ModeEqual:
		return "^" + escaped + "$"
	default:
		return "(?i)" + escaped
	}
}

// Matches reports whether value satisfies the condition.
func (c Condition) Matches(value string) bool {
	if c.mode == ModeEqual {
		return value == c.literal
	}
	return compile(c.Pattern()).MatchString(value)
}

// Predicate is an immutable boolean tree of conditions.
// The zero value matches everything.
type Predicate struct {
	op       Op
	cond     Condition
	children []Predicate
}

// All returns the empty predicate.
func All() Predicate { return Predicate{} }

// Match wraps a single condition.
func Match(c Condition) Predicate {
	return Predicate{op: OpMatch, cond: c}
}

// And combines predicates. Empty operands are dropped; a single operand is returned as-is.
func And(ps ...Predicate) Predicate { return combine(OpAnd, ps) }

// Or combines predicates. Empty operands are dropped; a single operand is returned as-is.
func Or(ps ...Predicate) Predicate { return combine(OpOr, ps) }

func combine(op Op, ps []Predicate) Predicate {
	kept := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		if !p.IsEmpty() {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return All()
	case 1:
		return kept[0]
	default:
		return Predicate{op: op, children: kept}
	}
}

// Op returns the node kind.
func (p Predicate) Op() Op { return p.op }

// Condition returns the condition of an OpMatch node.
func (p Predicate) Condition() Condition { return p.cond }

// Children returns the operands of an OpAnd/OpOr node.
func (p Predicate) Children() []Predicate { return p.children }

// IsEmpty reports whether the predicate matches everything.
func (p Predicate) IsEmpty() bool { return p.op == OpAll }

// Conditions flattens every condition in the tree, depth-first.
func (p Predicate) Conditions() []Condition {
	switch p.op {
	case OpMatch:
		return []Condition{p.cond}
	case OpAnd, OpOr:
		var out []Condition
		for _, c := range p.children {
			out = append(out, c.Conditions()...)
		}
		return out
	default:
		return nil
	}
}

// Matches evaluates the predicate against a document.
func (p Predicate) Matches(doc Fields) bool {
	switch p.op {
	case OpMatch:
		return p.cond.Matches(doc.FieldValue(p.cond.key))
	case OpAnd:
		for _, c := range p.children {
			if !c.Matches(doc) {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range p.children {
			if c.Matches(doc) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// String renders the tree for logs, e.g. (disease~"lupus" | uniprotId~"lupus") & organ="skin".
func (p Predicate) String() string {
	switch p.op {
	case OpMatch:
		sep := "~"
		switch p.cond.mode {
		case ModeExact:
			sep = "="
		case ModeEqual:
			sep = "=="
		}
		return p.cond.key + sep + `"` + p.cond.literal + `"`
	case OpAnd, OpOr:
		sep := " & "
		if p.op == OpOr {
			sep = " | "
		}
		parts := make([]string, len(p.children))
		for i, c := range p.children {
			if c.op == OpAnd || c.op == OpOr {
				parts[i] = "(" + c.String() + ")"
			} else {
				parts[i] = c.String()
			}
		}
		return strings.Join(parts, sep)
	default:
		return "*"
	}
}
