package biomarker

import (
	"errors"
	"testing"
	"time"

	"github.com/aadb-project/aadb/internal/domain"
)

var now = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	raw := map[string]string{"Name": "ANA"}
	b, err := New("b1", "  ANA ", "Rash", "95%", raw, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name != "ANA" {
		t.Errorf("Name = %q", b.Name)
	}
	raw["Name"] = "changed"
	if b.Raw["Name"] != "ANA" {
		t.Error("Raw should be copied")
	}
}

func TestNew_NameRequired(t *testing.T) {
	_, err := New("b1", " ", "", "", nil, now)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestFromRow(t *testing.T) {
	row := map[string]string{
		"Biomarker":              "Anti-CCP",
		"Clinical Manifestation": "Erosive arthritis",
		"Frequency":              "70%",
		"Lab":                    "ELISA",
	}
	b, err := FromRow("b2", row, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name != "Anti-CCP" || b.Manifestation != "Erosive arthritis" || b.Prevalence != "70%" {
		t.Errorf("unexpected mapping: %+v", b)
	}
	if b.Raw["Lab"] != "ELISA" || len(b.Raw) != 4 {
		t.Errorf("Raw = %v", b.Raw)
	}
	if b.FieldValue("manifestation") != "Erosive arthritis" || b.FieldValue("Lab") != "" {
		t.Error("FieldValue mismatch")
	}
}
