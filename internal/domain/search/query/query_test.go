package query

import (
	"testing"

	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
)

type doc map[string]string

func (d doc) FieldValue(name string) string { return d[name] }

func TestBuild_NoInputsMatchesAll(t *testing.T) {
	p := Build(field.Records(), Params{Search: "   ", Filters: map[string]string{"organ": " "}})
	if !p.IsEmpty() {
		t.Errorf("expected empty predicate, got %s", p)
	}
}

func TestBuild_ExactFilter(t *testing.T) {
	p := Build(field.Records(), Params{Filters: map[string]string{"disease": "Lupus"}})
	if p.Op() != filter.OpMatch {
		t.Fatalf("single filter should not be wrapped, got %s", p)
	}
	tests := []struct {
		value string
		want  bool
	}{
		{"lupus", true},
		{"LUPUS", true},
		{"Systemic Lupus", false},
		{"Lupus nephritis", false},
	}
	for _, tt := range tests {
		if got := p.Matches(doc{"disease": tt.value}); got != tt.want {
			t.Errorf("disease=%q: Matches() = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestBuild_FilterValueTrimmed(t *testing.T) {
	p := Build(field.Records(), Params{Filters: map[string]string{"organ": "  skin "}})
	if !p.Matches(doc{"organ": "Skin"}) {
		t.Error("trimmed filter value should match")
	}
}

func TestBuild_AutoantibodyFilterIsPartial(t *testing.T) {
	p := Build(field.Records(), Params{Filters: map[string]string{"autoantibody": "dsDNA"}})
	if !p.Matches(doc{"autoantibody": "Anti-dsDNA IgG"}) {
		t.Error("autoantibody filter should match substrings")
	}
	if p.Matches(doc{"autoantibody": "anti-Sm"}) {
		t.Error("unrelated antibody should not match")
	}
}

func TestBuild_UnknownFilterIgnored(t *testing.T) {
	reg := field.Records()
	base := Build(reg, Params{Filters: map[string]string{"disease": "lupus"}})
	withUnknown := Build(reg, Params{Filters: map[string]string{"disease": "lupus", "password": "x", "$where": "1"}})
	if base.String() != withUnknown.String() {
		t.Errorf("unknown filters changed predicate: %s vs %s", base, withUnknown)
	}
}

func TestBuild_SearchAndFiltersAnded(t *testing.T) {
	p := Build(field.Records(), Params{
		Search:  "thyroid",
		Field:   field.All,
		Filters: map[string]string{"organ": "gland", "isotype": "IgG"},
	})
	if p.Op() != filter.OpAnd || len(p.Children()) != 3 {
		t.Fatalf("expected AND of 3, got %s", p)
	}
	if p.Children()[0].Op() != filter.OpOr {
		t.Errorf("first clause should be the search OR, got %s", p.Children()[0])
	}
	ok := doc{"disease": "Hashimoto thyroiditis", "organ": "Gland", "isotype": "igg"}
	if !p.Matches(ok) {
		t.Error("expected match")
	}
	bad := doc{"disease": "Hashimoto thyroiditis", "organ": "Gland", "isotype": "IgM"}
	if p.Matches(bad) {
		t.Error("isotype mismatch should fail")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	reg := field.Records()
	params := Params{Search: "x", Filters: map[string]string{"organ": "a", "tissue": "b", "assay": "c", "isotype": "d"}}
	first := Build(reg, params).String()
	for range 20 {
		if got := Build(reg, params).String(); got != first {
			t.Fatalf("non-deterministic predicate: %s vs %s", got, first)
		}
	}
}

func TestSearch_AllFansOutOverEveryField(t *testing.T) {
	reg := field.Biomarkers()
	p := Search(reg, "rash", field.All)
	if len(p.Conditions()) != len(reg.Names()) {
		t.Fatalf("conditions = %d, want %d", len(p.Conditions()), len(reg.Names()))
	}
	if !p.Matches(doc{"manifestation": "Malar RASH"}) {
		t.Error("contains match on any field expected")
	}
}

func TestSearch_EmptyOrUnknownSelectorMeansAll(t *testing.T) {
	reg := field.Biomarkers()
	for _, sel := range []string{"", "bogus"} {
		if got := len(Search(reg, "x", sel).Conditions()); got != 3 {
			t.Errorf("selector %q: conditions = %d, want 3", sel, got)
		}
	}
}

func TestSearch_SingleField(t *testing.T) {
	p := Search(field.Records(), "lupus", field.Disease)
	if p.Op() != filter.OpMatch {
		t.Fatalf("expected single match, got %s", p)
	}
	if p.Condition().Mode() != filter.ModeContains {
		t.Error("search on one field is always partial")
	}
	if p.Matches(doc{"autoantibody": "lupus anticoagulant"}) {
		t.Error("other fields must not be consulted")
	}
}

func TestSearch_Ro52SynonymTriggeredByRo(t *testing.T) {
	p := Search(field.Records(), "ro", field.All)
	ssa := doc{"disease": "Sicca", "autoantibody": "SSA"}
	if !p.Matches(ssa) {
		t.Error("search=ro should reach SSA through the synonym rule")
	}
}

func TestSearch_Ro52TriggerTable(t *testing.T) {
	tests := []struct {
		term string
		want bool
	}{
		{"ro", true},
		{"RO", true},
		{" ro ", true},
		{"Ro52", true},
		{"anti-Ro52 antibody", true},
		{"Ro/SSA", true},
		{"ro (ssa)", true},
		{"bro", false},
		{"rope", false},
		{"ssa", false},
	}
	reg := field.Records()
	for _, tt := range tests {
		p := Search(reg, tt.term, field.All)
		got := len(p.Conditions()) > len(reg.Names())
		if got != tt.want {
			t.Errorf("term %q: synonym expansion = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestSearch_BroDoesNotReachSSA(t *testing.T) {
	p := Search(field.Records(), "bro", field.All)
	if p.Matches(doc{"autoantibody": "SSA", "disease": "Sicca"}) {
		t.Error("bro must not trigger the synonym rule")
	}
}

func TestSearch_SynonymsOnAutoantibodySelector(t *testing.T) {
	p := Search(field.Records(), "ro52", field.Autoantibody)
	if !p.Matches(doc{"autoantibody": "Ro/SS-A"}) {
		t.Error("synonym rule should apply when searching autoantibody")
	}
	q := Search(field.Records(), "ro52", field.Disease)
	if len(q.Conditions()) != 1 {
		t.Errorf("synonyms must not apply to disease search, got %s", q)
	}
}

func TestSearch_MetacharactersEscaped(t *testing.T) {
	p := Search(field.Records(), "C1q (classical)", field.All)
	if !p.Matches(doc{"autoantigen": "Complement C1q (classical) pathway"}) {
		t.Error("literal with parentheses should match")
	}
	if p.Matches(doc{"autoantigen": "C1q classical"}) {
		t.Error("parentheses must be literal")
	}
}
