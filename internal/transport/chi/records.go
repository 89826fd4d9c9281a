package chi

import (
	"bytes"
	"net/http"
	"strconv"

	router "github.com/go-chi/chi/v5"

	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	recorduc "github.com/aadb-project/aadb/internal/usecase/record"
)

// ScoredRecord is one advanced search hit.
type ScoredRecord struct {
	Score  int            `json:"score"`
	Record *domrec.Record `json:"record"`
}

// AdvancedStats aggregates every advanced search match.
type AdvancedStats struct {
	Count                  int `json:"count"`
	DistinctDiseases       int `json:"distinctDiseases"`
	DistinctAutoantibodies int `json:"distinctAutoantibodies"`
	DistinctAutoantigens   int `json:"distinctAutoantigens"`
}

// AdvancedResponse is the body of GET /api/v1/records/advanced.
type AdvancedResponse struct {
	Items []ScoredRecord `json:"items"`
	Count int            `json:"count"`
	Stats *AdvancedStats `json:"stats,omitempty"`
}

// FieldInfo describes one searchable field.
type FieldInfo struct {
	Name       string `json:"name"`
	FilterMode string `json:"filterMode"`
	SearchMode string `json:"searchMode"`
}

// ListRecords handles GET /api/v1/records.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	reg := s.RecordSearch.Registry()
	lq, err := bindListQuery(r, reg)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	page, err := s.RecordSearch.List(r.Context(), lq.request(reg, s.list))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse(page))
}

// AdvancedSearch handles GET /api/v1/records/advanced.
func (s *Server) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var (
		term  string
		limit int
		stats bool
	)
	if err := bindQuery(r,
		queryParam{"q", &term},
		queryParam{"limit", &limit},
		queryParam{"stats", &stats},
	); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	req, err := request.NewAdvanced(term, limit, stats, s.advanced)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	res, err := s.RecordSearch.Advanced(r.Context(), req)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	hits := res.Hits()
	resp := AdvancedResponse{Items: make([]ScoredRecord, len(hits)), Count: res.Count()}
	for i := range hits {
		resp.Items[i] = ScoredRecord{Score: hits[i].Score(), Record: hits[i].Item()}
	}
	if st := res.Stats(); st != nil {
		resp.Stats = &AdvancedStats{
			Count:                  st.Count,
			DistinctDiseases:       st.DistinctDiseases,
			DistinctAutoantibodies: st.DistinctAutoantibodies,
			DistinctAutoantigens:   st.DistinctAutoantigens,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// RecordFields handles GET /api/v1/records/fields.
func (s *Server) RecordFields(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, fieldInfos(s.RecordSearch.Registry()))
}

func fieldInfos(reg field.Registry) []FieldInfo {
	fields := reg.Fields()
	out := make([]FieldInfo, len(fields))
	for i, f := range fields {
		out[i] = FieldInfo{Name: f.Name(), FilterMode: f.FilterMode().String(), SearchMode: f.SearchMode().String()}
	}
	return out
}

// UniqueRecordValues handles GET /api/v1/records/unique/{field}.
func (s *Server) UniqueRecordValues(w http.ResponseWriter, r *http.Request) {
	values, err := s.Records.Unique(r.Context(), router.URLParam(r, "field"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"field": router.URLParam(r, "field"), "values": values})
}

// RecordStats handles GET /api/v1/records/stats.
func (s *Server) RecordStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.Records.Stats(r.Context())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ExportRecords handles GET /api/v1/records/export.
func (s *Server) ExportRecords(w http.ResponseWriter, r *http.Request) {
	reg := s.RecordSearch.Registry()
	lq, err := bindListQuery(r, reg)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	var format string
	if err := bindQuery(r, queryParam{"format", &format}); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	format, err = recorduc.ParseFormat(format)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	var buf bytes.Buffer
	n, err := s.Records.Export(r.Context(), &buf, format, lq.request(reg, s.list))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	contentType := "application/json"
	if format == recorduc.FormatCSV {
		contentType = "text/csv; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="records.`+format+`"`)
	w.Header().Set("X-Total-Count", strconv.Itoa(n))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// GetRecord handles GET /api/v1/records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Records.Get(r.Context(), router.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// CreateRecord handles POST /api/v1/records.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var in domrec.Record
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	rec, err := s.Records.Create(r.Context(), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/records/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// UpdateRecord handles PUT /api/v1/records/{id}.
func (s *Server) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var in domrec.Record
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	rec, err := s.Records.Update(r.Context(), router.URLParam(r, "id"), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteRecord handles DELETE /api/v1/records/{id}.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.Records.Delete(r.Context(), router.URLParam(r, "id")); err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportRecords handles POST /api/v1/records/import. Partial failures still answer 200.
func (s *Server) ImportRecords(w http.ResponseWriter, r *http.Request) {
	rows, err := importRows(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.Records.Import(r.Context(), rows, recorduc.SourceImport))
}
