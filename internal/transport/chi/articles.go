package chi

import (
	"net/http"

	router "github.com/go-chi/chi/v5"

	domart "github.com/aadb-project/aadb/internal/domain/article"
	articleuc "github.com/aadb-project/aadb/internal/usecase/article"
)

// ArticleRequest is the body of article create and update.
type ArticleRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Author  string `json:"author"`
	Status  string `json:"status"`
}

func (a ArticleRequest) input() domart.Input {
	return domart.Input{
		Title:   a.Title,
		Slug:    a.Slug,
		Content: a.Content,
		Type:    a.Type,
		Author:  a.Author,
		Status:  domart.Status(a.Status),
	}
}

// ListArticles handles GET /api/v1/articles.
func (s *Server) ListArticles(w http.ResponseWriter, r *http.Request) {
	var in articleuc.ListInput
	if err := bindQuery(r,
		queryParam{"search", &in.Search},
		queryParam{"type", &in.Type},
		queryParam{"status", &in.Status},
		queryParam{"page", &in.Page},
		queryParam{"limit", &in.Limit},
	); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	page, err := s.Articles.List(r.Context(), ActorFromContext(r.Context()), in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResponse(page))
}

// ReadArticle handles GET /api/v1/articles/{slug}.
func (s *Server) ReadArticle(w http.ResponseWriter, r *http.Request) {
	a, err := s.Articles.Read(r.Context(), ActorFromContext(r.Context()), router.URLParam(r, "slug"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// LikeArticle handles POST /api/v1/articles/{id}/like.
func (s *Server) LikeArticle(w http.ResponseWriter, r *http.Request) {
	n, err := s.Articles.Like(r.Context(), router.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"likes": n})
}

// CreateArticle handles POST /api/v1/articles.
func (s *Server) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	a, err := s.Articles.Create(r.Context(), ActorFromContext(r.Context()), req.input())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/articles/"+a.Slug)
	writeJSON(w, http.StatusCreated, a)
}

// UpdateArticle handles PUT /api/v1/articles/{id}.
func (s *Server) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	a, err := s.Articles.Update(r.Context(), router.URLParam(r, "id"), req.input())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// DeleteArticle handles DELETE /api/v1/articles/{id}.
func (s *Server) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := s.Articles.Delete(r.Context(), router.URLParam(r, "id")); err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PublishArticle handles POST /api/v1/articles/{id}/publish.
func (s *Server) PublishArticle(w http.ResponseWriter, r *http.Request) {
	a, err := s.Articles.Publish(r.Context(), ActorFromContext(r.Context()), router.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ArchiveArticle handles POST /api/v1/articles/{id}/archive.
func (s *Server) ArchiveArticle(w http.ResponseWriter, r *http.Request) {
	a, err := s.Articles.Archive(r.Context(), router.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
