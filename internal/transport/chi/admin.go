package chi

import (
	"net/http"

	healthuc "github.com/aadb-project/aadb/internal/usecase/health"
	"github.com/aadb-project/aadb/internal/version"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}

// HealthCheck handles GET /health. Only an unreachable database answers 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.Health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// DashboardStats handles GET /api/v1/stats.
func (s *Server) DashboardStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.Dashboard.Counts(r.Context())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// TriggerBackup handles POST /api/v1/backups.
func (s *Server) TriggerBackup(w http.ResponseWriter, r *http.Request) {
	if s.Backup == nil {
		writeError(w, http.StatusServiceUnavailable, CodeNotConfigured, "backup is not configured")
		return
	}
	res, err := s.Backup.Run(r.Context())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
