package record

import (
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/aadb-project/aadb/internal/domain"
)

// Required lists the fields every persisted record must carry.
var Required = []string{"disease", "autoantibody", "autoantigen", "epitope", "uniprotId"}

// Metadata describes where a record came from.
type Metadata struct {
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Verified    bool      `json:"verified"`
	DataVersion string    `json:"dataVersion,omitempty"`
}

// Record is a disease / autoantibody / autoantigen association entry.
type Record struct {
	ID string `json:"id"`

	Disease                 string `json:"disease"`
	Autoantibody            string `json:"autoantibody"`
	Autoantigen             string `json:"autoantigen"`
	Epitope                 string `json:"epitope"`
	UniprotID               string `json:"uniprotId"`
	DiagnosticMarker        string `json:"diagnosticMarker,omitempty"`
	DiseaseAssociation      string `json:"diseaseAssociation,omitempty"`
	PathogenesisInvolvement string `json:"pathogenesisInvolvement,omitempty"`
	Sensitivity             string `json:"sensitivity,omitempty"`
	Specificity             string `json:"specificity,omitempty"`
	Affinity                string `json:"affinity,omitempty"`
	Mechanism               string `json:"mechanism,omitempty"`
	Type                    string `json:"type,omitempty"`
	Category                string `json:"category,omitempty"`
	Organ                   string `json:"organ,omitempty"`
	Tissue                  string `json:"tissue,omitempty"`
	CellType                string `json:"cellType,omitempty"`
	Isotype                 string `json:"isotype,omitempty"`
	Assay                   string `json:"assay,omitempty"`
	Prevalence              string `json:"prevalence,omitempty"`
	ClinicalSignificance    string `json:"clinicalSignificance,omitempty"`
	CrossReactivity         string `json:"crossReactivity,omitempty"`
	Reference               string `json:"reference,omitempty"`
	PubmedID                string `json:"pubmedId,omitempty"`
	Notes                   string `json:"notes,omitempty"`

	Priority   Priority          `json:"priority,omitzero"`
	Additional map[string]string `json:"additional,omitempty"`
	Metadata   Metadata          `json:"metadata"`
}

var fields = map[string]func(*Record) *string{
	"disease":                 func(r *Record) *string { return &r.Disease },
	"autoantibody":            func(r *Record) *string { return &r.Autoantibody },
	"autoantigen":             func(r *Record) *string { return &r.Autoantigen },
	"epitope":                 func(r *Record) *string { return &r.Epitope },
	"uniprotId":               func(r *Record) *string { return &r.UniprotID },
	"diagnosticMarker":        func(r *Record) *string { return &r.DiagnosticMarker },
	"diseaseAssociation":      func(r *Record) *string { return &r.DiseaseAssociation },
	"pathogenesisInvolvement": func(r *Record) *string { return &r.PathogenesisInvolvement },
	"sensitivity":             func(r *Record) *string { return &r.Sensitivity },
	"specificity":             func(r *Record) *string { return &r.Specificity },
	"affinity":                func(r *Record) *string { return &r.Affinity },
	"mechanism":               func(r *Record) *string { return &r.Mechanism },
	"type":                    func(r *Record) *string { return &r.Type },
	"category":                func(r *Record) *string { return &r.Category },
	"organ":                   func(r *Record) *string { return &r.Organ },
	"tissue":                  func(r *Record) *string { return &r.Tissue },
	"cellType":                func(r *Record) *string { return &r.CellType },
	"isotype":                 func(r *Record) *string { return &r.Isotype },
	"assay":                   func(r *Record) *string { return &r.Assay },
	"prevalence":              func(r *Record) *string { return &r.Prevalence },
	"clinicalSignificance":    func(r *Record) *string { return &r.ClinicalSignificance },
	"crossReactivity":         func(r *Record) *string { return &r.CrossReactivity },
	"reference":               func(r *Record) *string { return &r.Reference },
	"pubmedId":                func(r *Record) *string { return &r.PubmedID },
	"notes":                   func(r *Record) *string { return &r.Notes },
}

// VerifiedKey addresses metadata.verified ("true"/"false") in predicates.
const VerifiedKey = "metadata.verified"

// FieldValue returns a descriptive field by its JSON name, "" when unknown.
func (r *Record) FieldValue(name string) string {
	if f, ok := fields[name]; ok {
		return *f(r)
	}
	if name == VerifiedKey {
		return strconv.FormatBool(r.Metadata.Verified)
	}
	return ""
}

// SetField assigns a descriptive field by its JSON name.
// It reports false for names that are not record fields.
func (r *Record) SetField(name, value string) bool {
	f, ok := fields[name]
	if !ok {
		return false
	}
	*f(r) = value
	return true
}

// IsField reports whether name is a descriptive record field.
func IsField(name string) bool {
	_, ok := fields[name]
	return ok
}

// Trim strips surrounding whitespace from every descriptive field.
func (r *Record) Trim() {
	for _, f := range fields {
		p := f(r)
		*p = strings.TrimSpace(*p)
	}
}

// Validate checks the required fields.
func (r *Record) Validate() error {
	var missing []string
	for _, name := range Required {
		if strings.TrimSpace(r.FieldValue(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domain.NewMissingFields(missing...)
	}
	return nil
}

// Clone returns a deep copy.
func (r *Record) Clone() Record {
	c := *r
	c.Additional = maps.Clone(r.Additional)
	return c
}

// SortKey returns the normalized priority used by every ranked listing.
func (r *Record) SortKey() float64 { return r.Priority.Normalize() }

// DocID returns the record identifier.
func (r *Record) DocID() string { return r.ID }
