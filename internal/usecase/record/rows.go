package record

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/field"
)

// columnAliases maps normalized spreadsheet headers to record fields.
// Every registry field name is accepted under its own normalized form too.
var columnAliases = func() map[string]string {
	m := map[string]string{
		"diseasename":       field.Disease,
		"antibody":          field.Autoantibody,
		"autoantibodies":    field.Autoantibody,
		"antigen":           field.Autoantigen,
		"targetantigen":     field.Autoantigen,
		"uniprot":           field.UniprotID,
		"uniprotaccession":  field.UniprotID,
		"pmid":              "pubmedId",
		"pubmed":            "pubmedId",
		"diagnosticvalue":   field.DiagnosticMarker,
		"association":       field.DiseaseAssociation,
		"pathogenesis":      field.PathogenesisInvolvement,
		"pathogenicrole":    field.PathogenesisInvolvement,
		"celltypes":         "cellType",
		"crossreactive":     "crossReactivity",
		"references":        field.Reference,
		"comment":           "notes",
		"comments":          "notes",
		"clinicalrelevance": "clinicalSignificance",
	}
	for _, name := range field.Records().Names() {
		m[normalizeColumn(name)] = name
	}
	return m
}()

func normalizeColumn(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fromRow maps one imported row onto a record. Unknown non-blank columns land in
// Additional under their original header; an "id" column is ignored.
// When several headers map to the same field, the column named after the field
// wins; otherwise the first non-blank value in header order does.
func fromRow(row map[string]string) domrec.Record {
	var r domrec.Record
	canonical := make(map[string]bool)
	for _, col := range slices.Sorted(maps.Keys(row)) {
		v := strings.TrimSpace(row[col])
		key := normalizeColumn(col)
		switch {
		case key == "id":
			continue
		case key == "priority":
			if r.Priority.IsZero() {
				r.Priority = domrec.StringPriority(v)
			}
		case columnAliases[key] != "":
			name := columnAliases[key]
			isCanonical := key == normalizeColumn(name)
			if v == "" || canonical[name] || (!isCanonical && r.FieldValue(name) != "") {
				continue
			}
			r.SetField(name, v)
			canonical[name] = isCanonical
		case v != "":
			if r.Additional == nil {
				r.Additional = make(map[string]string)
			}
			r.Additional[col] = v
		}
	}
	return r
}
