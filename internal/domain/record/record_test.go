package record

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aadb-project/aadb/internal/domain"
	"github.com/aadb-project/aadb/internal/domain/search/field"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		p    Priority
		want float64
	}{
		{"absent", Priority{}, 0},
		{"empty string", StringPriority(""), 0},
		{"decimal string", StringPriority("3.5"), 3.5},
		{"negative string", StringPriority("-2"), -2},
		{"plus sign", StringPriority("+4"), 4},
		{"garbage", StringPriority("abc"), 0},
		{"padded", StringPriority(" 3"), 0},
		{"trailing dot", StringPriority("3."), 0},
		{"exponent", StringPriority("1e3"), 0},
		{"number", NumberPriority(7), 7},
		{"negative number", NumberPriority(-1.25), -1.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriority_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in       string
		wantKind PriorityKind
		wantNorm float64
	}{
		{`{"priority":null}`, PriorityAbsent, 0},
		{`{}`, PriorityAbsent, 0},
		{`{"priority":""}`, PriorityAbsent, 0},
		{`{"priority":5}`, PriorityNumber, 5},
		{`{"priority":"12"}`, PriorityString, 12},
		{`{"priority":"high"}`, PriorityString, 0},
		{`{"priority":true}`, PriorityAbsent, 0},
	}
	for _, tt := range tests {
		var r Record
		if err := json.Unmarshal([]byte(tt.in), &r); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.in, err)
		}
		if r.Priority.Kind() != tt.wantKind {
			t.Errorf("%s: Kind() = %v, want %v", tt.in, r.Priority.Kind(), tt.wantKind)
		}
		if r.SortKey() != tt.wantNorm {
			t.Errorf("%s: SortKey() = %v, want %v", tt.in, r.SortKey(), tt.wantNorm)
		}
	}
}

func TestPriority_MarshalKeepsRawForm(t *testing.T) {
	r := Record{ID: "1", Priority: StringPriority("07")}
	data, err := json.Marshal(&r)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["priority"] != "07" {
		t.Errorf("priority = %#v, want \"07\"", raw["priority"])
	}

	data, _ = json.Marshal(&Record{ID: "2"})
	raw = nil
	_ = json.Unmarshal(data, &raw)
	if _, ok := raw["priority"]; ok {
		t.Error("absent priority should be omitted")
	}
}

func TestValidate_MissingFields(t *testing.T) {
	r := Record{Disease: "Lupus", Autoantibody: "  ", Epitope: "x"}
	err := r.Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("expected *ValidationError")
	}
	want := []string{"autoantibody", "autoantigen", "uniprotId"}
	if len(ve.Missing) != len(want) {
		t.Fatalf("Missing = %v, want %v", ve.Missing, want)
	}
	for i := range want {
		if ve.Missing[i] != want[i] {
			t.Errorf("Missing[%d] = %q, want %q", i, ve.Missing[i], want[i])
		}
	}
}

func TestValidate_OK(t *testing.T) {
	r := Record{Disease: "a", Autoantibody: "b", Autoantigen: "c", Epitope: "d", UniprotID: "e"}
	if err := r.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFieldAccessors_CoverRegistry(t *testing.T) {
	for _, name := range field.Records().Names() {
		var r Record
		if !r.SetField(name, "v-"+name) {
			t.Errorf("SetField(%q) not supported", name)
			continue
		}
		if r.FieldValue(name) != "v-"+name {
			t.Errorf("FieldValue(%q) = %q", name, r.FieldValue(name))
		}
	}
	var r Record
	if r.SetField("priority", "1") {
		t.Error("priority is not a descriptive field")
	}
	if r.FieldValue("nope") != "" {
		t.Error("unknown field should read empty")
	}
}

func TestTrimAndClone(t *testing.T) {
	r := Record{Disease: "  Lupus ", Additional: map[string]string{"k": "v"}}
	r.Trim()
	if r.Disease != "Lupus" {
		t.Errorf("Disease = %q", r.Disease)
	}
	c := r.Clone()
	c.Additional["k"] = "changed"
	if r.Additional["k"] != "v" {
		t.Error("Clone shares Additional map")
	}
}

func TestFieldValue_Verified(t *testing.T) {
	r := Record{Metadata: Metadata{Verified: true}}
	if got := r.FieldValue(VerifiedKey); got != "true" {
		t.Errorf("FieldValue(verified) = %q", got)
	}
	if IsField(VerifiedKey) {
		t.Error("verified flag is not a descriptive field")
	}
}
