package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/shopdb/internal/config"
	"github.com/localnerve/shopdb/internal/store"
	"github.com/localnerve/shopdb/internal/utils"
	"github.com/sirupsen/logrus"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every check passed.
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(ctx context.Context, cfg *config.Config, st store.Store) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Remote databases must accept TCP before a ping is worth trying
	if addr := utils.DatabaseAddress(cfg); addr != "" {
		if err := utils.PingService(addr, 1500*time.Millisecond); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_dial_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database dial failed: %v", err)
			logrus.WithError(err).Warn("Health check failed - database dial")
			return result
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := st.Ping(ctx); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		logrus.WithError(err).Warn("Health check failed - database ping")
		return result
	}

	result.Database = "ok"
	result.Details["database_type"] = st.Kind()
	if cfg.DBDatabase != "" {
		result.Details["database_name"] = cfg.DBDatabase
	}
	logrus.Debug("Health check passed - all systems operational")

	return result
}
