package folio

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Outcome labels for folio_client_operations_total.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

type clientMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	m := &clientMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "client",
			Name:      "operations_total",
			Help:      "Embedded client calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "folio",
			Subsystem: "client",
			Name:      "operation_duration_seconds",
			Help:      "Embedded client call latency.",
			// Seeding a large file lands in the top buckets.
			Buckets: []float64{0.001, 0.005, 0.02, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or swaps in the collector already registered
// under the same name so several clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("folio: register client metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("folio: client metric registered as %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer logs and counts client calls. A nil observer does nothing.
type observer struct {
	logger  *zap.Logger
	metrics *clientMetrics
}

func newObserver(logger *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}
	m, err := newClientMetrics(reg)
	if err != nil {
		return nil, err
	}
	o.metrics = m
	return o, nil
}

// outcome classifies err. Caller mistakes are kept apart from backend failures.
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrValidation):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	took := time.Since(start)
	result := outcome(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, result).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(took.Seconds())
	}
	if o.logger == nil {
		return
	}

	fields := []zap.Field{zap.String("op", op), zap.String("outcome", result), zap.Duration("took", took)}
	if result == outcomeError {
		o.logger.Warn("Client operation failed", append(fields, zap.Error(err))...)
		return
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	o.logger.Debug("Client operation", fields...)
}
