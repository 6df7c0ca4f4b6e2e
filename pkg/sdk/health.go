package folio

import (
	"context"
	"slices"

	healthuc "github.com/kailas-cloud/folio/internal/usecase/health"
)

// HealthStatus is the outcome of probing the store and the vote backend.
// Status is "ok", "degraded" (votes unreachable) or "error" (store unreachable).
type HealthStatus struct {
	Status string
	Checks map[string]string
}

// Healthy reports whether every component answered.
func (h HealthStatus) Healthy() bool {
	return h.Status == string(healthuc.Healthy)
}

// Failing lists the components whose probe failed, sorted by name.
func (h HealthStatus) Failing() []string {
	var out []string
	for name, res := range h.Checks {
		if res != string(healthuc.CheckOK) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Health probes the store and, when configured with one, the vote ledger.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	h := HealthStatus{Status: string(report.Status), Checks: make(map[string]string, len(report.Checks))}
	for name, res := range report.Checks {
		h.Checks[name] = string(res)
	}
	return h
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
