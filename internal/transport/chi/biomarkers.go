package chi

import (
	"net/http"

	router "github.com/go-chi/chi/v5"

	biomarkeruc "github.com/aadb-project/aadb/internal/usecase/biomarker"
)

// ListBiomarkers handles GET /api/v1/biomarkers.
func (s *Server) ListBiomarkers(w http.ResponseWriter, r *http.Request) {
	reg := s.BiomarkerSearch.Registry()
	lq, err := bindListQuery(r, reg)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	page, err := s.BiomarkerSearch.List(r.Context(), lq.request(reg, s.list))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse(page))
}

// UniqueBiomarkerValues handles GET /api/v1/biomarkers/unique/{field}.
func (s *Server) UniqueBiomarkerValues(w http.ResponseWriter, r *http.Request) {
	name := router.URLParam(r, "field")
	values, err := s.Biomarkers.Unique(r.Context(), name)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"field": name, "values": values})
}

// GetBiomarker handles GET /api/v1/biomarkers/{id}.
func (s *Server) GetBiomarker(w http.ResponseWriter, r *http.Request) {
	b, err := s.Biomarkers.Get(r.Context(), router.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// CreateBiomarker handles POST /api/v1/biomarkers.
func (s *Server) CreateBiomarker(w http.ResponseWriter, r *http.Request) {
	var in biomarkeruc.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	b, err := s.Biomarkers.Create(r.Context(), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/biomarkers/"+b.ID)
	writeJSON(w, http.StatusCreated, b)
}

// UpdateBiomarker handles PUT /api/v1/biomarkers/{id}.
func (s *Server) UpdateBiomarker(w http.ResponseWriter, r *http.Request) {
	var in biomarkeruc.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	b, err := s.Biomarkers.Update(r.Context(), router.URLParam(r, "id"), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// DeleteBiomarker handles DELETE /api/v1/biomarkers/{id}.
func (s *Server) DeleteBiomarker(w http.ResponseWriter, r *http.Request) {
	if err := s.Biomarkers.Delete(r.Context(), router.URLParam(r, "id")); err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportBiomarkers handles POST /api/v1/biomarkers/import.
func (s *Server) ImportBiomarkers(w http.ResponseWriter, r *http.Request) {
	rows, err := importRows(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.Biomarkers.Import(r.Context(), rows))
}
