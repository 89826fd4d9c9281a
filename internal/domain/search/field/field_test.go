package field

import (
	"testing"

	"github.com/aadb-project/aadb/internal/domain/search/filter"
)

func TestRecords_FieldCount(t *testing.T) {
	r := Records()
	if got := len(r.Names()); got != 25 {
		t.Errorf("len(Names()) = %d, want 25", got)
	}
	if r.Names()[0] != Disease {
		t.Errorf("first field = %q, want %q", r.Names()[0], Disease)
	}
}

func TestRecords_FilterModes(t *testing.T) {
	r := Records()
	tests := []struct {
		name string
		want filter.Mode
	}{
		{Disease, filter.ModeExact},
		{Autoantigen, filter.ModeExact},
		{UniprotID, filter.ModeExact},
		{"organ", filter.ModeExact},
		{Autoantibody, filter.ModeContains},
	}
	for _, tt := range tests {
		got, ok := r.FilterMode(tt.name)
		if !ok {
			t.Errorf("FilterMode(%q) not recognized", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("FilterMode(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRecords_SearchModeAlwaysContains(t *testing.T) {
	r := Records()
	for _, f := range r.Fields() {
		if f.SearchMode() != filter.ModeContains {
			t.Errorf("SearchMode(%q) = %v, want contains", f.Name(), f.SearchMode())
		}
	}
}

func TestRegistry_Unknown(t *testing.T) {
	r := Records()
	if r.Has("password") {
		t.Error("Has(password) = true")
	}
	if _, ok := r.Lookup("all"); ok {
		t.Error("the all selector must not be a field")
	}
	if _, ok := r.FilterMode("nope"); ok {
		t.Error("FilterMode(nope) ok = true")
	}
}

func TestNewRegistry_DropsDuplicatesAndEmpty(t *testing.T) {
	r := NewRegistry([]Field{New("a"), New(""), NewPartial("a"), New("b")})
	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names() = %v, want [a b]", names)
	}
	if m, _ := r.FilterMode("a"); m != filter.ModeExact {
		t.Error("first declaration should win")
	}
}

func TestFields_ReturnsCopy(t *testing.T) {
	r := Biomarkers()
	fs := r.Fields()
	fs[0] = New("mutated")
	if r.Names()[0] != "name" {
		t.Error("registry mutated through Fields()")
	}
}

func TestSynonyms_OnlyRecords(t *testing.T) {
	if len(Records().Synonyms()) != 1 {
		t.Fatal("Records() should carry the Ro52 rule")
	}
	s := Records().Synonyms()[0]
	if s.Field != Autoantibody || len(s.Terms) != 7 {
		t.Errorf("unexpected rule: %+v", s)
	}
	if len(Biomarkers().Synonyms()) != 0 || len(Articles().Synonyms()) != 0 {
		t.Error("synonym rules leaked into other registries")
	}
}
