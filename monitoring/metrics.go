package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	purchasesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatepass_purchases_total",
			Help: "Completed purchases",
		},
	)

	ticketsIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatepass_tickets_issued_total",
			Help: "Tickets issued per category",
		},
		[]string{"category"},
	)

	redemptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatepass_redemptions_total",
			Help: "Scan attempts per outcome",
		},
		[]string{"outcome"},
	)

	revenueTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gatepass_revenue_total",
			Help: "Accumulated revenue in whole currency units",
		},
	)
)

func RecordPurchase(categories []string, totalAmount int64) {
	purchasesTotal.Inc()
	for _, c := range categories {
		ticketsIssuedTotal.WithLabelValues(c).Inc()
	}
	revenueTotal.Add(float64(totalAmount))
}

func RecordRedemption(outcome string) {
	redemptionsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
