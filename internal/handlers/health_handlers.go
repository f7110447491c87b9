package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"clearspendly/internal/caching"
	"clearspendly/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// JobStatusReporter exposes the background scheduler's job inventory for
// the metrics endpoint.
type JobStatusReporter interface {
	GetJobStatus() map[string]interface{}
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db       *pgxpool.Pool
	cacheSvc caching.CacheService
	storage  services.ObjectStorage
	jobs     JobStatusReporter
	bucket   string
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService, storage services.ObjectStorage, jobs JobStatusReporter, bucket string) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		cacheSvc: cacheSvc,
		storage:  storage,
		jobs:     jobs,
		bucket:   bucket,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// HealthCheck performs health checks on all backing services
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   "1.0.0",
	}

	if err := h.checkDatabase(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	if err := h.checkStorage(ctx); err != nil {
		health.Services["storage"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["storage"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, health)
}

// checkDatabase verifies database connectivity
func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	return h.db.Ping(ctx)
}

// checkStorage verifies object storage connectivity
func (h *HealthHandlers) checkStorage(ctx context.Context) error {
	if h.storage == nil {
		return nil
	}
	_, err := h.storage.BucketExists(ctx, h.bucket)
	return err
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.checkDatabase(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "database unavailable",
		})
	}
	if err := h.cacheSvc.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "redis unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// LivenessCheck determines if the application is running
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetMetrics provides basic application metrics
func (h *HealthHandlers) GetMetrics(c echo.Context) error {
	stat := h.db.Stat()
	metrics := map[string]interface{}{
		"timestamp":  time.Now().UTC(),
		"goroutines": runtime.NumGoroutine(),
		"database_connections": map[string]interface{}{
			"total":    stat.TotalConns(),
			"idle":     stat.IdleConns(),
			"acquired": stat.AcquiredConns(),
			"max":      stat.MaxConns(),
		},
	}
	if h.jobs != nil {
		metrics["background_jobs"] = h.jobs.GetJobStatus()
	}
	return c.JSON(http.StatusOK, metrics)
}
