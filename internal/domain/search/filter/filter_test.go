package filter

import (
	"strings"
	"testing"
)

type doc map[string]string

func (d doc) FieldValue(name string) string { return d[name] }

// --- Condition tests ---

func TestContains_CaseInsensitiveSubstring(t *testing.T) {
	c := Contains("autoantibody", "ro52")
	tests := []struct {
		value string
		want  bool
	}{
		{"Anti-Ro52", true},
		{"RO52", true},
		{"anti-ro60", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.Matches(tt.value); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestExact_AnchoredCaseInsensitive(t *testing.T) {
	c := Exact("organ", "Skin")
	tests := []struct {
		value string
		want  bool
	}{
		{"skin", true},
		{"SKIN", true},
		{"skin and joints", false},
		{"thin skin", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.Matches(tt.value); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestEqual_CaseSensitive(t *testing.T) {
	c := Equal("submittedBy", "alice")
	tests := []struct {
		value string
		want  bool
	}{
		{"alice", true},
		{"Alice", false},
		{"ALICE", false},
		{"alice2", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.Matches(tt.value); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
	if c.Pattern() != "^alice$" {
		t.Errorf("Pattern() = %q", c.Pattern())
	}
	if got := Match(c).String(); got != `submittedBy=="alice"` {
		t.Errorf("String() = %q", got)
	}
}

func TestPattern_EscapesMetacharacters(t *testing.T) {
	c := Contains("autoantigen", "C1q (classical)")
	if !strings.Contains(c.Pattern(), `\(classical\)`) {
		t.Errorf("Pattern() = %q, expected escaped parentheses", c.Pattern())
	}
	if !c.Matches("Complement C1q (classical) pathway") {
		t.Error("literal text with metacharacters should match")
	}
	if c.Matches("C1q classical") {
		t.Error("parentheses must be matched literally")
	}
}

func TestPattern_KeepsNonASCII(t *testing.T) {
	c := Exact("disease", "Sjögren")
	if c.Pattern() != "(?i)^Sjögren$" {
		t.Errorf("Pattern() = %q", c.Pattern())
	}
	if !c.Matches("SJÖGREN") {
		t.Error("non-ASCII letters should fold case")
	}
}

func TestExact_DotIsLiteral(t *testing.T) {
	c := Exact("uniprotId", "P.1")
	if c.Matches("PX1") {
		t.Error("dot must not act as wildcard")
	}
}

// --- Predicate tests ---

func TestAll_MatchesEverything(t *testing.T) {
	p := All()
	if !p.IsEmpty() {
		t.Error("IsEmpty() = false")
	}
	if !p.Matches(doc{}) {
		t.Error("empty predicate should match")
	}
}

func TestAnd_SingleOperandUnwrapped(t *testing.T) {
	m := Match(Contains("disease", "lupus"))
	p := And(m)
	if p.Op() != OpMatch {
		t.Fatalf("Op() = %v, want OpMatch", p.Op())
	}
}

func TestAnd_DropsEmptyOperands(t *testing.T) {
	p := And(All(), All())
	if !p.IsEmpty() {
		t.Error("AND of empty predicates should be empty")
	}
	p = And(All(), Match(Exact("organ", "skin")), All())
	if p.Op() != OpMatch {
		t.Errorf("Op() = %v, want OpMatch", p.Op())
	}
}

func TestAndOr_Evaluation(t *testing.T) {
	p := And(
		Or(Match(Contains("disease", "lupus")), Match(Contains("autoantibody", "lupus"))),
		Match(Exact("organ", "skin")),
	)
	if p.Op() != OpAnd || len(p.Children()) != 2 {
		t.Fatalf("unexpected tree: %s", p)
	}

	tests := []struct {
		name string
		d    doc
		want bool
	}{
		{"both", doc{"disease": "Systemic Lupus", "organ": "Skin"}, true},
		{"or via antibody", doc{"autoantibody": "lupus anticoagulant", "organ": "skin"}, true},
		{"organ mismatch", doc{"disease": "lupus", "organ": "kidney"}, false},
		{"text mismatch", doc{"disease": "psoriasis", "organ": "skin"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Matches(tt.d); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConditions_Flatten(t *testing.T) {
	p := And(
		Or(Match(Contains("a", "1")), Match(Contains("b", "1"))),
		Match(Exact("c", "2")),
	)
	conds := p.Conditions()
	if len(conds) != 3 {
		t.Fatalf("Conditions() len = %d, want 3", len(conds))
	}
	if conds[2].Key() != "c" || conds[2].Mode() != ModeExact {
		t.Errorf("unexpected third condition: %+v", conds[2])
	}
}

func TestString(t *testing.T) {
	p := And(
		Or(Match(Contains("disease", "x")), Match(Contains("epitope", "x"))),
		Match(Exact("organ", "skin")),
	)
	want := `(disease~"x" | epitope~"x") & organ="skin"`
	if p.String() != want {
		t.Errorf("String() = %s, want %s", p.String(), want)
	}
	if All().String() != "*" {
		t.Errorf("All().String() = %s", All().String())
	}
}

func TestCompile_Cached(t *testing.T) {
	src := Contains("k", "cache-me").Pattern()
	a := compile(src)
	b := compile(src)
	if a != b {
		t.Error("expected the same compiled regexp from cache")
	}
}
