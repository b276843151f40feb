package metrics

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nurkanat-dev/lifelog/internal/health"
)

// healthChecker is satisfied by *health.Checker.
type healthChecker interface {
	Liveness(ctx context.Context) health.HealthResult
	Readiness(ctx context.Context) health.HealthResult
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
