package health_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nurkanat-dev/lifelog/internal/health"
	"github.com/prometheus/client_golang/prometheus"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

func newChecker(deps map[string]health.Pinger) *health.Checker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return health.NewChecker(deps, logger, prometheus.NewRegistry())
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c := newChecker(map[string]health.Pinger{})
	if got := c.Liveness(context.Background()); got.Status != "up" {
		t.Errorf("status = %q, want up", got.Status)
	}
}

func TestReadiness_AllDepsUp(t *testing.T) {
	c := newChecker(map[string]health.Pinger{
		"postgres": &fakePinger{},
		"minio":    &fakePinger{},
	})

	got := c.Readiness(context.Background())
	if got.Status != "up" {
		t.Errorf("status = %q, want up", got.Status)
	}
	if got.Checks["postgres"].Status != "up" || got.Checks["minio"].Status != "up" {
		t.Errorf("checks = %+v, want all up", got.Checks)
	}
}

func TestReadiness_OneDepDown(t *testing.T) {
	c := newChecker(map[string]health.Pinger{
		"postgres": &fakePinger{},
		"minio":    &fakePinger{err: errors.New("connection refused")},
	})

	got := c.Readiness(context.Background())
	if got.Status != "down" {
		t.Errorf("status = %q, want down", got.Status)
	}
	if got.Checks["postgres"].Status != "up" {
		t.Errorf("postgres = %+v, want up", got.Checks["postgres"])
	}
	if got.Checks["minio"].Status != "down" || got.Checks["minio"].Error == "" {
		t.Errorf("minio = %+v, want down with error", got.Checks["minio"])
	}
}
