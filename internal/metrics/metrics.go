// Package metrics holds the prometheus collectors for reconciliation and payment flows.
package metrics

import (
	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Commit outcomes.
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
	OutcomeStale   = "stale"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	PlanRows            *prometheus.CounterVec
	Commits             *prometheus.CounterVec
	Payments            *prometheus.CounterVec
	PaymentUnallocated  *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PlanRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "receivables_reconciliation_rows_total",
			Help: "Reconciliation plan rows by classification.",
		}, []string{"status"}),
		Commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "receivables_reconciliation_commits_total",
			Help: "Reconciliation commits by outcome.",
		}, []string{"outcome"}),
		Payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "receivables_payments_total",
			Help: "Recorded payments by currency.",
		}, []string{"currency"}),
		PaymentUnallocated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "receivables_payment_unallocated_total",
			Help: "Payment amount left unapplied after allocation, by currency.",
		}, []string{"currency"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.PlanRows, m.Commits, m.Payments, m.PaymentUnallocated, m.HTTPRequestDuration)
	return m
}

// ObservePlan counts the rows of an analyzed plan.
func (m *Metrics) ObservePlan(s domain.PlanSummary) {
	if m == nil {
		return
	}
	m.PlanRows.WithLabelValues(string(domain.RowCreate)).Add(float64(s.ToCreate))
	m.PlanRows.WithLabelValues(string(domain.RowUpdate)).Add(float64(s.ToUpdate))
	m.PlanRows.WithLabelValues(string(domain.RowSkip)).Add(float64(s.ToSkip))
	m.PlanRows.WithLabelValues(string(domain.RowDelete)).Add(float64(s.ToDelete))
	m.PlanRows.WithLabelValues(string(domain.RowError)).Add(float64(s.Errors))
}

// ObserveCommit counts a commit attempt.
func (m *Metrics) ObserveCommit(outcome string) {
	if m == nil {
		return
	}
	m.Commits.WithLabelValues(outcome).Inc()
}

// ObservePayment counts a recorded payment and its unapplied remainder.
func (m *Metrics) ObservePayment(currency string, unallocated decimal.Decimal) {
	if m == nil {
		return
	}
	m.Payments.WithLabelValues(currency).Inc()
	if unallocated.IsPositive() {
		m.PaymentUnallocated.WithLabelValues(currency).Add(unallocated.InexactFloat64())
	}
}

// CommitOutcome classifies a commit result.
func CommitOutcome(res domain.CommitResult) string {
	switch {
	case !res.Success:
		return OutcomeFailed
	case len(res.Errors) > 0:
		return OutcomePartial
	default:
		return OutcomeSuccess
	}
}
