package chi

import (
	"net/http"

	router "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	dombio "github.com/aadb-project/aadb/internal/domain/biomarker"
	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	"github.com/aadb-project/aadb/internal/domain/search/result"
	"github.com/aadb-project/aadb/internal/metrics"
	articleuc "github.com/aadb-project/aadb/internal/usecase/article"
	backupuc "github.com/aadb-project/aadb/internal/usecase/backup"
	biomarkeruc "github.com/aadb-project/aadb/internal/usecase/biomarker"
	dashboarduc "github.com/aadb-project/aadb/internal/usecase/dashboard"
	healthuc "github.com/aadb-project/aadb/internal/usecase/health"
	recorduc "github.com/aadb-project/aadb/internal/usecase/record"
	searchuc "github.com/aadb-project/aadb/internal/usecase/search"
	submissionuc "github.com/aadb-project/aadb/internal/usecase/submission"
)

// Services are the usecases behind the API. Backup may be nil.
type Services struct {
	Records         *recorduc.Service
	RecordSearch    *searchuc.Service[*domrec.Record]
	Submissions     *submissionuc.Service
	Biomarkers      *biomarkeruc.Service
	BiomarkerSearch *searchuc.Service[*dombio.Biomarker]
	Articles        *articleuc.Service
	Dashboard       *dashboarduc.Service
	Backup          *backupuc.Service
	Health          *healthuc.Service
}

// Server holds the HTTP handlers.
type Server struct {
	Services
	list     request.Limits
	advanced request.Limits
	maxBody  int64
}

// NewServer creates an HTTP API server.
func NewServer(svc Services) *Server {
	return &Server{Services: svc, maxBody: 32 << 20}
}

// WithLimits sets the listing and advanced search windows.
func (s *Server) WithLimits(list, advanced request.Limits) *Server {
	s.list = list
	s.advanced = advanced
	return s
}

// WithMaxBody caps request bodies.
func (s *Server) WithMaxBody(n int64) *Server {
	if n > 0 {
		s.maxBody = n
	}
	return s
}

// NewRouter assembles middleware and routes.
func NewRouter(s *Server, log *zap.Logger, keys []Key) http.Handler {
	r := router.NewRouter()
	r.Use(Recoverer(log))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEvent(log))
	r.Use(ActorMiddleware(keys))
	r.Use(metrics.Middleware())
	r.Use(s.limitBody)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	s.Routes(r)
	return r
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r router.Router) {
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r router.Router) {
		r.Route("/records", func(r router.Router) {
			r.Get("/", s.ListRecords)
			r.Get("/advanced", s.AdvancedSearch)
			r.Get("/fields", s.RecordFields)
			r.Get("/unique/{field}", s.UniqueRecordValues)
			r.Get("/stats", s.RecordStats)
			r.Get("/export", s.ExportRecords)
			r.Get("/{id}", s.GetRecord)

			r.Group(func(r router.Router) {
				r.Use(RequireAdmin)
				r.Post("/", s.CreateRecord)
				r.Post("/import", s.ImportRecords)
				r.Put("/{id}", s.UpdateRecord)
				r.Delete("/{id}", s.DeleteRecord)
			})
		})

		r.Route("/submissions", func(r router.Router) {
			r.Use(RequireUser)
			r.Post("/", s.CreateSubmission)
			r.Get("/mine", s.MySubmissions)
			r.Get("/{id}", s.GetSubmission)
			r.Put("/{id}", s.EditSubmission)
			r.Delete("/{id}", s.DeleteSubmission)

			r.Group(func(r router.Router) {
				r.Use(RequireAdmin)
				r.Get("/", s.ListSubmissions)
				r.Post("/{id}/approve", s.ApproveSubmission)
				r.Post("/{id}/reject", s.RejectSubmission)
			})
		})

		r.Route("/biomarkers", func(r router.Router) {
			r.Get("/", s.ListBiomarkers)
			r.Get("/unique/{field}", s.UniqueBiomarkerValues)
			r.Get("/{id}", s.GetBiomarker)

			r.Group(func(r router.Router) {
				r.Use(RequireAdmin)
				r.Post("/", s.CreateBiomarker)
				r.Post("/import", s.ImportBiomarkers)
				r.Put("/{id}", s.UpdateBiomarker)
				r.Delete("/{id}", s.DeleteBiomarker)
			})
		})

		r.Route("/articles", func(r router.Router) {
			r.Get("/", s.ListArticles)
			r.Get("/{slug}", s.ReadArticle)
			r.Post("/{id}/like", s.LikeArticle)

			r.Group(func(r router.Router) {
				r.Use(RequireAdmin)
				r.Post("/", s.CreateArticle)
				r.Put("/{id}", s.UpdateArticle)
				r.Delete("/{id}", s.DeleteArticle)
				r.Post("/{id}/publish", s.PublishArticle)
				r.Post("/{id}/archive", s.ArchiveArticle)
			})
		})

		r.Group(func(r router.Router) {
			r.Use(RequireAdmin)
			r.Get("/stats", s.DashboardStats)
			r.Post("/backups", s.TriggerBackup)
		})
	})
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
		}
		next.ServeHTTP(w, r)
	})
}

// PageResponse is a ranked listing page.
type PageResponse[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func pageResponse[T any](p result.Page[T]) PageResponse[T] {
	items := p.Items()
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{
		Items:      items,
		Total:      p.Total(),
		Page:       p.Page(),
		Limit:      p.Limit(),
		TotalPages: p.TotalPages(),
	}
}
