package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names accepted by PrometheusMetrics
const (
	MetricAuthenticationEvent  = "authentication_event"
	MetricAuthVerification     = "auth_verification"
	MetricCircuitBreakerState  = "circuit_breaker_state"
	MetricExpenseCreated       = "expense_created"
	MetricExpenseDeleted       = "expense_deleted"
	MetricCategoryCreated      = "category_created"
	MetricCategoryDeleted      = "category_deleted"
	MetricReportGenerated      = "report_generated"
	MetricAuthVerificationTime = "auth_verification_duration"
	MetricReportTime           = "report_duration"
)

type PrometheusMetrics struct {
	authenticationEventsTotal *prometheus.CounterVec
	authVerificationsTotal    *prometheus.CounterVec
	authVerificationDuration  prometheus.Histogram
	circuitBreakerState       *prometheus.GaugeVec
	expensesTotal             *prometheus.CounterVec
	categoriesTotal           *prometheus.CounterVec
	reportsTotal              *prometheus.CounterVec
	reportDuration            prometheus.Histogram
}

// NewPrometheusMetrics registers the service collectors on reg. Each
// registry accepts the collectors once.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		authenticationEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		authVerificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_verification_total",
				Help: "Total number of delegated token verifications by outcome",
			},
			[]string{"outcome"},
		),
		authVerificationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "auth_verification_duration_seconds",
				Help:    "Latency of delegated token verification calls",
				Buckets: prometheus.DefBuckets,
			},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		expensesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenses_total",
				Help: "Total number of expense writes by operation",
			},
			[]string{"operation"},
		),
		categoriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "categories_total",
				Help: "Total number of category writes by operation",
			},
			[]string{"operation"},
		),
		reportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reports_generated_total",
				Help: "Total number of analytics reports generated",
			},
			[]string{"report"},
		),
		reportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "report_duration_milliseconds",
				Help:    "Analytics report generation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricAuthenticationEvent:
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	case MetricAuthVerification:
		if outcome := tags["outcome"]; outcome != "" {
			m.authVerificationsTotal.WithLabelValues(outcome).Inc()
		}
	case MetricExpenseCreated:
		m.expensesTotal.WithLabelValues("create").Inc()
	case MetricExpenseDeleted:
		m.expensesTotal.WithLabelValues("delete").Inc()
	case MetricCategoryCreated:
		m.categoriesTotal.WithLabelValues("create").Inc()
	case MetricCategoryDeleted:
		m.categoriesTotal.WithLabelValues("delete").Inc()
	case MetricReportGenerated:
		if report := tags["report"]; report != "" {
			m.reportsTotal.WithLabelValues(report).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricAuthVerificationTime:
		m.authVerificationDuration.Observe(duration.Seconds())
	case MetricReportTime:
		m.reportDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == MetricCircuitBreakerState {
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	}
}

type noopMetrics struct{}

// NewNoopMetrics returns a recorder that discards everything
func NewNoopMetrics() MetricsRecorderInterface { return noopMetrics{} }

func (noopMetrics) IncrementCounter(string, map[string]string) {}
func (noopMetrics) RecordProcessingTime(string, time.Duration) {}
func (noopMetrics) RecordGauge(string, float64, map[string]string) {}
