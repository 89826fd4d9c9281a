package biomarker

import (
	"maps"
	"strings"
	"time"

	"github.com/aadb-project/aadb/internal/domain"
)

// Biomarker is a catalog entry. Raw keeps the imported columns verbatim.
type Biomarker struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Manifestation string            `json:"manifestation,omitempty"`
	Prevalence    string            `json:"prevalence,omitempty"`
	Raw           map[string]string `json:"raw,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// New validates and creates a Biomarker.
func New(id, name, manifestation, prevalence string, raw map[string]string, now time.Time) (Biomarker, error) {
	b := Biomarker{
		ID:            id,
		Name:          strings.TrimSpace(name),
		Manifestation: strings.TrimSpace(manifestation),
		Prevalence:    strings.TrimSpace(prevalence),
		Raw:           maps.Clone(raw),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := b.Validate(); err != nil {
		return Biomarker{}, err
	}
	return b, nil
}

// FromRow maps an imported row. Recognized columns are matched case-insensitively;
// every column is preserved in Raw.
func FromRow(id string, row map[string]string, now time.Time) (Biomarker, error) {
	var name, manifestation, prevalence string
	for k, v := range row {
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "name", "biomarker", "marker":
			name = v
		case "manifestation", "clinical manifestation":
			manifestation = v
		case "prevalence", "frequency":
			prevalence = v
		}
	}
	return New(id, name, manifestation, prevalence, row, now)
}

// Validate checks the required fields.
func (b *Biomarker) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return domain.NewMissingFields("name")
	}
	return nil
}

// FieldValue returns a catalog field by name.
func (b *Biomarker) FieldValue(name string) string {
	switch name {
	case "name":
		return b.Name
	case "manifestation":
		return b.Manifestation
	case "prevalence":
		return b.Prevalence
	default:
		return ""
	}
}


// DocID returns the biomarker identifier.
func (b *Biomarker) DocID() string { return b.ID }
