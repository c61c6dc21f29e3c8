package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedBreaker gobreaker.State

func (b fixedBreaker) Name() string           { return "database" }
func (b fixedBreaker) State() gobreaker.State { return gobreaker.State(b) }
func (b fixedBreaker) IsOpen() bool           { return gobreaker.State(b) == gobreaker.StateOpen }

type fixedCounter struct {
	n   int64
	err error
}

func (c fixedCounter) Count(context.Context) (int64, error) { return c.n, c.err }

func serveHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	return rec.Code, resp
}

func TestHealthHandler_Healthy(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(10)
	mock.ExpectPing()

	code, resp := serveHealth(t, &HealthHandler{
		DB:       db,
		Breaker:  fixedBreaker(gobreaker.StateClosed),
		Articles: fixedCounter{n: 2},
		Version:  "test-version",
	})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test-version", resp.Version)
	assert.Equal(t, "healthy", resp.Checks["database"].Status)
	assert.Equal(t, "closed", resp.Checks["circuit_breaker"].Details["state"])
	assert.Equal(t, float64(2), resp.Checks["articles"].Details["count"])
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	mock.ExpectPing().WillReturnError(errors.New("dial postgres://u:secret@db failed"))

	code, resp := serveHealth(t, &HealthHandler{DB: db, Articles: fixedCounter{n: 1}})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "database unreachable", resp.Checks["database"].Message)
	assert.NotContains(t, resp.Checks, "articles")
}

func TestHealthHandler_NoDatabaseConfigured(t *testing.T) {
	code, resp := serveHealth(t, &HealthHandler{})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not configured", resp.Checks["database"].Message)
}

func TestHealthHandler_OpenBreakerIsDegraded(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(10)
	mock.ExpectPing()

	code, resp := serveHealth(t, &HealthHandler{
		DB:       db,
		Breaker:  fixedBreaker(gobreaker.StateOpen),
		Articles: fixedCounter{err: sql.ErrConnDone},
	})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "degraded", resp.Checks["circuit_breaker"].Status)
	assert.Equal(t, "circuit open, store calls fail fast", resp.Checks["circuit_breaker"].Message)
	assert.Equal(t, "database", resp.Checks["circuit_breaker"].Details["name"])
	assert.Equal(t, "degraded", resp.Checks["articles"].Status)
}

func TestHealthHandler_HalfOpenBreakerIsDegraded(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(10)
	mock.ExpectPing()

	_, resp := serveHealth(t, &HealthHandler{DB: db, Breaker: fixedBreaker(gobreaker.StateHalfOpen)})

	assert.Equal(t, "degraded", resp.Checks["circuit_breaker"].Status)
	assert.Equal(t, "circuit half-open, trial calls to the store", resp.Checks["circuit_breaker"].Message)
	assert.Equal(t, "half-open", resp.Checks["circuit_breaker"].Details["state"])
}

func TestHealthHandler_UnlimitedPoolIsDegraded(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	mock.ExpectPing()

	_, resp := serveHealth(t, &HealthHandler{DB: db})
	assert.Equal(t, "degraded", resp.Checks["database"].Status)
}

func TestReadyHandler(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing()
	rec := httptest.NewRecorder()
	(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())

	mock.ExpectPing().WillReturnError(sql.ErrConnDone)
	rec = httptest.NewRecorder()
	(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sql:")

	rec = httptest.NewRecorder()
	(&ReadyHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
}
