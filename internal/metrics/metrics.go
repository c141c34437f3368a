package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ticksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compliments_ticks_total",
			Help: "Scheduler tick loop iterations",
		},
	)

	deliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliments_deliveries_total",
			Help: "Compliments delivered, by trigger kind (scheduled or surprise)",
		},
		[]string{"kind"},
	)

	deliveryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliments_delivery_failures_total",
			Help: "Failed dispatch attempts by channel",
		},
		[]string{"channel"},
	)

	tickErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compliments_tick_errors_total",
			Help: "Ticks skipped because store reads failed",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordTick counts one scheduler loop iteration.
func RecordTick() {
	ticksTotal.Inc()
}

// RecordDelivery counts one delivered compliment. kind is "scheduled" or
// "surprise".
func RecordDelivery(kind string) {
	deliveriesTotal.WithLabelValues(kind).Inc()
}

// RecordDeliveryFailure counts a failed dispatch on one channel.
func RecordDeliveryFailure(channel string) {
	deliveryFailures.WithLabelValues(channel).Inc()
}

// RecordTickError counts a tick skipped due to a store failure.
func RecordTickError() {
	tickErrors.Inc()
}
