package chi

import (
	"net/http"

	router "github.com/go-chi/chi/v5"

	domrec "github.com/aadb-project/aadb/internal/domain/record"
	domsub "github.com/aadb-project/aadb/internal/domain/submission"
)

// ReviewRequest is the optional body of approve and reject.
type ReviewRequest struct {
	Note string `json:"note"`
}

// ApproveResponse carries the reviewed submission and the record it produced.
type ApproveResponse struct {
	Submission *domsub.Submission `json:"submission"`
	Record     *domrec.Record     `json:"record"`
}

// CreateSubmission handles POST /api/v1/submissions.
func (s *Server) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var draft domrec.Record
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	sub, err := s.Submissions.Create(r.Context(), ActorFromContext(r.Context()), draft)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/submissions/"+sub.ID)
	writeJSON(w, http.StatusCreated, sub)
}

// MySubmissions handles GET /api/v1/submissions/mine.
func (s *Server) MySubmissions(w http.ResponseWriter, r *http.Request) {
	var page, limit int
	if err := bindQuery(r, queryParam{"page", &page}, queryParam{"limit", &limit}); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	res, err := s.Submissions.Mine(r.Context(), ActorFromContext(r.Context()), page, limit)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse(res))
}

// ListSubmissions handles GET /api/v1/submissions?status=.
func (s *Server) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	var (
		status      string
		page, limit int
	)
	if err := bindQuery(r,
		queryParam{"status", &status},
		queryParam{"page", &page},
		queryParam{"limit", &limit},
	); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	res, err := s.Submissions.List(r.Context(), status, page, limit)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse(res))
}

// GetSubmission handles GET /api/v1/submissions/{id}.
func (s *Server) GetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := s.Submissions.Get(r.Context(), ActorFromContext(r.Context()), router.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// EditSubmission handles PUT /api/v1/submissions/{id}.
func (s *Server) EditSubmission(w http.ResponseWriter, r *http.Request) {
	var draft domrec.Record
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	sub, err := s.Submissions.Edit(r.Context(), ActorFromContext(r.Context()), router.URLParam(r, "id"), draft)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// DeleteSubmission handles DELETE /api/v1/submissions/{id}.
func (s *Server) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	if err := s.Submissions.Delete(r.Context(), ActorFromContext(r.Context()), router.URLParam(r, "id")); err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApproveSubmission handles POST /api/v1/submissions/{id}/approve.
func (s *Server) ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	req, ok := reviewRequest(w, r)
	if !ok {
		return
	}
	sub, rec, err := s.Submissions.Approve(r.Context(), ActorFromContext(r.Context()), router.URLParam(r, "id"), req.Note)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApproveResponse{Submission: sub, Record: rec})
}

// RejectSubmission handles POST /api/v1/submissions/{id}/reject.
func (s *Server) RejectSubmission(w http.ResponseWriter, r *http.Request) {
	req, ok := reviewRequest(w, r)
	if !ok {
		return
	}
	sub, err := s.Submissions.Reject(r.Context(), ActorFromContext(r.Context()), router.URLParam(r, "id"), req.Note)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// reviewRequest reads the optional review note. An empty body is allowed.
func reviewRequest(w http.ResponseWriter, r *http.Request) (ReviewRequest, bool) {
	var req ReviewRequest
	if r.ContentLength == 0 {
		return req, true
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return req, false
	}
	return req, true
}
