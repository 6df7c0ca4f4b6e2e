package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an auxiliary component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the primary store is unreachable.
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

// Component names reported in Report.Checks.
const (
	ComponentDatabase = "database"
	ComponentVotes    = "votes"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type component struct {
	name     string
	pinger   Pinger
	critical bool
}

// Service coordinates health checks.
type Service struct {
	components []component
}

// Option adds an auxiliary component.
type Option func(*Service)

// WithComponent registers a non-critical component. A nil pinger is ignored.
func WithComponent(name string, p Pinger) Option {
	return func(s *Service) {
		if p != nil {
			s.components = append(s.components, component{name: name, pinger: p})
		}
	}
}

// New creates a Service. The database is the only critical component.
func New(db Pinger, opts ...Option) *Service {
	s := &Service{components: []component{{name: ComponentDatabase, pinger: db, critical: true}}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.components))
	status := Healthy

	for _, c := range s.components {
		if err := c.pinger.Ping(ctx); err != nil {
			checks[c.name] = CheckError
			if c.critical {
				status = Unhealthy
			} else if status == Healthy {
				status = Degraded
			}
			continue
		}
		checks[c.name] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
