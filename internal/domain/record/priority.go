package record

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
)

var numericPriority = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// PriorityKind tells which variant of the stored priority value is set.
type PriorityKind uint8

// Priority variants.
const (
	PriorityAbsent PriorityKind = iota
	PriorityNumber
	PriorityString
)

// Priority is the editorial ranking weight as stored: absent, a number, or a string.
// The raw value is kept as-is; Normalize derives the sort key.
type Priority struct {
	kind PriorityKind
	num  float64
	str  string
}

// NumberPriority creates a numeric priority.
func NumberPriority(v float64) Priority {
	return Priority{kind: PriorityNumber, num: v}
}

// StringPriority creates a string priority. The empty string is absent.
func StringPriority(s string) Priority {
	if s == "" {
		return Priority{}
	}
	return Priority{kind: PriorityString, str: s}
}

// Kind returns the stored variant.
func (p Priority) Kind() PriorityKind { return p.kind }

// IsZero reports whether the priority is absent.
func (p Priority) IsZero() bool { return p.kind == PriorityAbsent }

// Normalize returns the numeric sort key: numbers verbatim, numeric-looking
// strings parsed, everything else 0.
func (p Priority) Normalize() float64 {
	switch p.kind {
	case PriorityNumber:
		return p.num
	case PriorityString:
		if !numericPriority.MatchString(p.str) {
			return 0
		}
		v, err := strconv.ParseFloat(p.str, 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

// String returns the raw value as text ("" when absent).
func (p Priority) String() string {
	switch p.kind {
	case PriorityNumber:
		return strconv.FormatFloat(p.num, 'f', -1, 64)
	case PriorityString:
		return p.str
	default:
		return ""
	}
}

// MarshalJSON writes null, a number or a string.
func (p Priority) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case PriorityNumber:
		return json.Marshal(p.num)
	case PriorityString:
		return json.Marshal(p.str)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, numbers and strings. Other JSON types decode as absent.
func (p *Priority) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*p = Priority{}
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = StringPriority(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*p = NumberPriority(v)
	}
	return nil
}

