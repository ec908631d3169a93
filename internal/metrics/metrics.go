// Package metrics exposes Prometheus collectors for registrations, card
// charges and HTTP traffic.
package metrics

import (
	"time"

	"github.com/phrazzld/paycore-api/internal/domain"
	"github.com/phrazzld/paycore-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "paycore"

// Recorder implements the service metrics interfaces on a Prometheus registry.
type Recorder struct {
	registrations   *prometheus.CounterVec
	charges         *prometheus.CounterVec
	gatewayDuration prometheus.Histogram
}

var (
	_ service.RegistrationMetrics = (*Recorder)(nil)
	_ service.PaymentMetrics      = (*Recorder)(nil)
)

// NewRecorder registers the business collectors with registerer.
func NewRecorder(registerer prometheus.Registerer) *Recorder {
	factory := promauto.With(registerer)

	return &Recorder{
		registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "customer_registrations_total",
				Help:      "The total number of customer registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		charges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "card_charges_total",
				Help:      "The total number of card charge attempts by outcome and currency",
			},
			[]string{"outcome", "currency"},
		),
		gatewayDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "charge_gateway_duration_seconds",
				Help:      "Latency of card charge gateway calls",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// RegistrationCompleted implements service.RegistrationMetrics
func (r *Recorder) RegistrationCompleted(outcome string) {
	r.registrations.WithLabelValues(outcome).Inc()
}

// ChargeCompleted implements service.PaymentMetrics
func (r *Recorder) ChargeCompleted(outcome string, currency string) {
	r.charges.WithLabelValues(outcome, currencyLabel(currency)).Inc()
}

// GatewayCallObserved implements service.PaymentMetrics
func (r *Recorder) GatewayCallObserved(duration time.Duration) {
	r.gatewayDuration.Observe(duration.Seconds())
}

// currencyLabel bounds label cardinality to the known currency codes.
func currencyLabel(currency string) string {
	switch domain.Currency(currency) {
	case domain.CurrencyUSD, domain.CurrencyGBP, domain.CurrencyEUR:
		return currency
	default:
		return "other"
	}
}
