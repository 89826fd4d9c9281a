package field

// Record field names referenced outside the registry.
const (
	Disease                 = "disease"
	Autoantibody            = "autoantibody"
	Autoantigen             = "autoantigen"
	Epitope                 = "epitope"
	UniprotID               = "uniprotId"
	DiagnosticMarker        = "diagnosticMarker"
	DiseaseAssociation      = "diseaseAssociation"
	PathogenesisInvolvement = "pathogenesisInvolvement"
	Reference               = "reference"
)

// ro52Synonyms covers the inconsistent names the SSA/Ro52 antibody family is recorded under.
var ro52Synonyms = Synonyms{
	Field:         Autoantibody,
	Triggers:      []string{"ro52", "anti-ro52", "ro/ssa", "ro (ssa)"},
	ExactTriggers: []string{"ro"},
	Terms:         []string{"ro52", "anti-ro52", "ssa", "ro/ssa", "ro (ssa)", "ro/ss-a", "ro ss-a"},
}

// Records returns the registry of disease-association record fields.
// Direct filters on autoantibody match partially so that a short antibody
// fragment surfaces every disease linked to any antibody containing it.
func Records() Registry {
	return NewRegistry([]Field{
		New(Disease),
		NewPartial(Autoantibody),
		New(Autoantigen),
		New(Epitope),
		New(UniprotID),
		New(DiagnosticMarker),
		New(DiseaseAssociation),
		New(PathogenesisInvolvement),
		New("sensitivity"),
		New("specificity"),
		New("affinity"),
		New("mechanism"),
		New("type"),
		New("category"),
		New("organ"),
		New("tissue"),
		New("cellType"),
		New("isotype"),
		New("assay"),
		New("prevalence"),
		New("clinicalSignificance"),
		New("crossReactivity"),
		New(Reference),
		New("pubmedId"),
		New("notes"),
	}, ro52Synonyms)
}

// Biomarkers returns the registry of biomarker catalog fields.
func Biomarkers() Registry {
	return NewRegistry([]Field{
		New("name"),
		New("manifestation"),
		New("prevalence"),
	})
}

// Articles returns the registry of article fields.
func Articles() Registry {
	return NewRegistry([]Field{
		New("title"),
		New("content"),
		New("type"),
		New("author"),
		New("status"),
		New("slug"),
	})
}
