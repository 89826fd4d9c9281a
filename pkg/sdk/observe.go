package aadb

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcomes used as the status label.
const (
	statusOK      = "ok"
	statusPartial = "partial"
	statusError   = "error"
)

// collectionClient labels operations that are not tied to a collection.
const collectionClient = "client"

type sdkMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rows     *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aadb",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK operations by collection, operation and status (ok, partial, error).",
		}, []string{"collection", "operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aadb",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection", "operation"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aadb",
			Subsystem: "sdk",
			Name:      "rows_total",
			Help:      "Documents returned, exported or imported through the SDK, by outcome (ok, failed).",
		}, []string{"collection", "operation", "outcome"}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.rows); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or points it at the collector a previous client
// already registered under the same name.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("aadb: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("aadb: metric already registered as %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// call is one SDK operation in flight. Services fill rows and failed before
// the call is finished.
type call struct {
	collection string
	op         string
	start      time.Time
	rows       int // documents returned to the caller or written
	failed     int // import rows rejected
}

func begin(collection, op string) *call {
	return &call{collection: collection, op: op, start: time.Now()}
}

func (c *call) status(err error) string {
	switch {
	case c.failed > 0 && c.rows > 0:
		return statusPartial
	case err != nil:
		return statusError
	default:
		return statusOK
	}
}

// observer reports finished calls to slog and, when configured, prometheus.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// finish records c. A nil observer is a no-op.
func (o *observer) finish(c *call, err error) {
	if o == nil {
		return
	}
	dur := time.Since(c.start)
	status := c.status(err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(c.collection, c.op, status).Inc()
		o.metrics.duration.WithLabelValues(c.collection, c.op).Observe(dur.Seconds())
		if c.rows > 0 {
			o.metrics.rows.WithLabelValues(c.collection, c.op, statusOK).Add(float64(c.rows))
		}
		if c.failed > 0 {
			o.metrics.rows.WithLabelValues(c.collection, c.op, "failed").Add(float64(c.failed))
		}
	}

	if o.logger == nil {
		return
	}
	attrs := []any{
		slog.String("collection", c.collection),
		slog.String("op", c.op),
		slog.Duration("duration", dur),
		slog.Int("rows", c.rows),
	}
	switch status {
	case statusOK:
		o.logger.Debug("aadb call completed", attrs...)
	case statusPartial:
		o.logger.Warn("aadb import partially failed", append(attrs, slog.Int("failed", c.failed), slog.Any("error", err))...)
	default:
		o.logger.Warn("aadb call failed", append(attrs, slog.Int("failed", c.failed), slog.Any("error", err))...)
	}
}
