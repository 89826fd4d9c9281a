package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/aadb-project/aadb/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	storage StorageChecker
}

// New creates a Service.
func New(db DBPinger) *Service {
	return &Service{db: db}
}

// WithStorage adds the backup store to the report.
func (s *Service) WithStorage(storage StorageChecker) *Service {
	s.storage = storage
	return s
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.db.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn("database health check failed", zap.Error(err))
		checks["database"] = CheckError
		status = Unhealthy
	} else {
		checks["database"] = CheckOK
	}

	if s.storage != nil {
		if err := s.storage.Check(ctx); err != nil {
			logger.FromContext(ctx).Warn("backup storage health check failed", zap.Error(err))
			checks["backup_storage"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["backup_storage"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
