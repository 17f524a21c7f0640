// Package metrics exposes Prometheus collectors for the product store and service.
package metrics

import (
	"errors"
	"fmt"
	"time"

	perrors "github.com/abgdnv/webshop/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeUnknownType = "unknown_type"
	OutcomeError       = "error"
)

// StoreMetrics records product store operations. It implements store.Recorder.
type StoreMetrics struct {
	operations      *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	skipped         *prometheus.CounterVec
	eventsPublished *prometheus.CounterVec
}

// NewStoreMetrics registers the collectors with the default registerer.
func NewStoreMetrics() *StoreMetrics {
	return NewStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStoreMetricsWithRegisterer registers the collectors with registerer.
// Collectors that are already registered are reused.
func NewStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StoreMetrics{
		operations: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webshop_store_operations_total",
			Help: "Total number of product store operations by operation and outcome",
		}, []string{"operation", "outcome"})),
		duration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "webshop_store_operation_duration_seconds",
			Help:    "Duration of product store operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"})),
		skipped: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webshop_store_skipped_documents_total",
			Help: "Total number of documents skipped because their type tag is not recognized",
		}, []string{"type"})),
		eventsPublished: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webshop_events_published_total",
			Help: "Total number of product events handed to the publisher by outcome",
		}, []string{"outcome"})),
	}
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(C)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", alreadyRegistered.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// ObserveOperation counts op under the outcome derived from err and records its duration.
func (m *StoreMetrics) ObserveOperation(op string, err error, elapsed time.Duration) {
	m.operations.WithLabelValues(op, Outcome(err)).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// DocumentSkipped counts a document dropped from a listing.
func (m *StoreMetrics) DocumentSkipped(typeTag string) {
	m.skipped.WithLabelValues(typeTag).Inc()
}

// EventPublished counts a publish attempt.
func (m *StoreMetrics) EventPublished(err error) {
	m.eventsPublished.WithLabelValues(Outcome(err)).Inc()
}

// Outcome maps an operation error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, perrors.ErrUnknownProductType):
		return OutcomeUnknownType
	case errors.Is(err, perrors.ErrProductNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
