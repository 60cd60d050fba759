package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := NewPrometheusMetrics(reg)
	metrics := recorder.(*PrometheusMetrics)

	recorder.IncrementCounter(MetricAuthenticationEvent, map[string]string{"event_type": "login_success"})
	recorder.IncrementCounter(MetricAuthenticationEvent, map[string]string{"event_type": "login_success"})
	recorder.IncrementCounter(MetricAuthVerification, map[string]string{"outcome": "verified"})
	recorder.IncrementCounter(MetricExpenseCreated, nil)
	recorder.IncrementCounter(MetricCategoryDeleted, nil)
	recorder.IncrementCounter(MetricReportGenerated, map[string]string{"report": "summary"})
	recorder.IncrementCounter("unknown_metric", nil)
	recorder.RecordGauge(MetricCircuitBreakerState, 1, map[string]string{"service": "auth"})
	recorder.RecordProcessingTime(MetricReportTime, 12*time.Millisecond)
	recorder.RecordProcessingTime(MetricAuthVerificationTime, 3*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.authenticationEventsTotal.WithLabelValues("login_success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.authVerificationsTotal.WithLabelValues("verified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.expensesTotal.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.categoriesTotal.WithLabelValues("delete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.reportsTotal.WithLabelValues("summary")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.circuitBreakerState.WithLabelValues("auth")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "report_duration_milliseconds")
	assert.Contains(t, names, "auth_verification_duration_seconds")
}

func TestPrometheusMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewPrometheusMetrics(prometheus.NewRegistry())
		NewPrometheusMetrics(prometheus.NewRegistry())
	})
}
