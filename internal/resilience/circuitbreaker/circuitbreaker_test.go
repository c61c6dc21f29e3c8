package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         10 * time.Second,
		Timeout:          20 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	if cb == nil {
		t.Fatal("expected circuit breaker, got nil")
	}
	if cb.Name() != "test-circuit" {
		t.Errorf("expected name='test-circuit', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state=Closed, got %v", cb.State())
	}
}

func TestCircuitBreaker_StateMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.Name = "metrics-circuit"
	cb := New(cfg)

	if got := testutil.ToFloat64(stateGauge.WithLabelValues("metrics-circuit")); got != 0 {
		t.Errorf("expected closed gauge=0, got %v", got)
	}

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, errors.New("boom") })
	}

	if got := testutil.ToFloat64(stateGauge.WithLabelValues("metrics-circuit")); got != float64(gobreaker.StateOpen) {
		t.Errorf("expected open gauge=%d, got %v", gobreaker.StateOpen, got)
	}
	if got := testutil.ToFloat64(transitionsTotal.WithLabelValues("metrics-circuit", "closed", "open")); got != 1 {
		t.Errorf("expected one closed->open transition, got %v", got)
	}
}

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	cb := New(testConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected result='success', got %v", result)
	}
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	cb := New(testConfig())
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, boom })
		if !errors.Is(err, boom) {
			t.Fatalf("attempt %d: expected boom, got %v", i+1, err)
		}
	}

	if !cb.IsOpen() {
		t.Fatalf("expected breaker to be open, state=%v", cb.State())
	}

	called := false
	_, err := cb.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
	if called {
		t.Error("protected function must not run while open")
	}
}

func TestCircuitBreaker_IsSuccessful(t *testing.T) {
	benign := errors.New("benign")
	cfg := testConfig()
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, benign) }
	cb := New(cfg)

	for i := 0; i < 10; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, benign })
	}

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("benign errors must not trip the breaker, state=%v", cb.State())
	}
}
