// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 预订引擎的核心指标。promauto 会把它们注册到默认 Registry，
// 各服务通过 promhttp.Handler() 暴露 /metrics 即可。
var (
	AvailabilityChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lodge_availability_checks_total",
		Help: "Number of availability checks, partitioned by outcome.",
	}, []string{"outcome"}) // free | conflict

	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lodge_reservations_created_total",
		Help: "Number of successfully created reservations.",
	})

	PriceCalculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lodge_price_calculations_total",
		Help: "Number of price calculations, partitioned by tariff.",
	}, []string{"tariff"})

	PromocodeValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lodge_promocode_validations_total",
		Help: "Number of promocode validations, partitioned by outcome.",
	}, []string{"outcome"}) // accepted | rejected

	QuoteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lodge_quote_duration_seconds",
		Help:    "End-to-end latency of the quote pipeline.",
		Buckets: prometheus.DefBuckets,
	})
)
