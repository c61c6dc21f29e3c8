// Package http holds the cross-cutting HTTP pieces of the service: access
// logging, panic recovery, body limits, metrics and the health endpoints.
// Resource handlers live in subpackages.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"articles-api/internal/handler/http/respond"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerState reports the state of a circuit breaker.
type BreakerState interface {
	Name() string
	State() gobreaker.State
	IsOpen() bool
}

// ArticleCounter reports how many articles are stored.
type ArticleCounter interface {
	Count(ctx context.Context) (int64, error)
}

// HealthHandler reports database reachability, pool usage, circuit breaker
// state and the article count. Only an unreachable database makes it 503.
type HealthHandler struct {
	DB       *sql.DB
	Breaker  BreakerState
	Articles ArticleCounter
	Version  string
}

// ServeHTTP reports service health
// @Summary      Health check
// @Tags         operations
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	healthy := true

	if h.DB != nil {
		checks["database"] = h.checkDatabase(ctx)
		healthy = checks["database"].Status != statusUnhealthy
	} else {
		checks["database"] = CheckStatus{Status: statusUnhealthy, Message: "not configured"}
		healthy = false
	}

	if h.Breaker != nil {
		checks["circuit_breaker"] = checkBreaker(h.Breaker)
	}

	if h.Articles != nil && healthy {
		checks["articles"] = h.checkArticles(ctx)
	}

	// degraded is a warning, the service still answers
	status, code := statusHealthy, http.StatusOK
	if !healthy {
		status, code = statusUnhealthy, http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		slog.Warn("health: database ping failed", slog.String("error", respond.SanitizeError(err)))
		return CheckStatus{Status: statusUnhealthy, Message: "database unreachable"}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: statusDegraded, Message: "connection pool max connections not configured", Details: details}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{Status: statusDegraded, Message: "connection pool utilization above 80%", Details: details}
	}

	return CheckStatus{Status: statusHealthy, Details: details}
}

func checkBreaker(b BreakerState) CheckStatus {
	state := b.State()
	check := CheckStatus{
		Status:  statusHealthy,
		Details: map[string]any{"name": b.Name(), "state": state.String()},
	}
	switch {
	case b.IsOpen():
		check.Status = statusDegraded
		check.Message = "circuit open, store calls fail fast"
	case state != gobreaker.StateClosed:
		check.Status = statusDegraded
		check.Message = "circuit half-open, trial calls to the store"
	}
	return check
}

func (h *HealthHandler) checkArticles(ctx context.Context) CheckStatus {
	n, err := h.Articles.Count(ctx)
	if err != nil {
		return CheckStatus{Status: statusDegraded, Message: "count failed"}
	}
	UpdateArticlesTotal(n)
	return CheckStatus{Status: statusHealthy, Details: map[string]any{"count": n}}
}

// ReadyHandler answers readiness checks: 200 once the database accepts queries.
type ReadyHandler struct {
	DB *sql.DB
}

// ServeHTTP checks readiness
// @Summary      Readiness check
// @Tags         operations
// @Produce      plain
// @Success      200 {string} string "ready"
// @Failure      503 {string} string "not ready"
// @Router       /ready [get]
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers liveness checks. It never touches the database.
type LiveHandler struct{}

// ServeHTTP checks liveness
// @Summary      Liveness check
// @Tags         operations
// @Produce      plain
// @Success      200 {string} string "alive"
// @Router       /live [get]
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
