package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.StatusChanged("PENDING", "APPROVED")
	m.StatusChanged("PENDING", "APPROVED")
	m.RepaymentRecorded("PENDING")
	m.LoanClosed()
	m.ReconcileRun()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("PENDING", "APPROVED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.repayments.WithLabelValues("PENDING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.closures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reconciled))
}

func TestMetrics_HTTP(t *testing.T) {
	m := New()

	m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))
	m.RequestFinished(http.MethodPost, "/repayments", http.StatusCreated, 20*time.Millisecond)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/repayments", "201")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.StatusChanged("a", "b")
		m.RepaymentRecorded("PENDING")
		m.LoanClosed()
		m.ReconcileRun()
		m.RequestStarted()
		m.RequestFinished("GET", "/", 200, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.LoanClosed()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "lending_ledger_loans_closed_total 1"))
}
