package services

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "starbyte",
		Name:      "checkout_total",
		Help:      "Checkouts by final state.",
	}, []string{"state"})

	deliveryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "starbyte",
		Name:      "delivery_total",
		Help:      "Resolved deliveries by type and outcome.",
	}, []string{"type", "ok"})

	receiptTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "starbyte",
		Name:      "receipt_total",
		Help:      "Receipt emails by outcome.",
	}, []string{"success"})
)

func observeDelivery(deliveryType string, ok bool) {
	deliveryTotal.WithLabelValues(deliveryType, strconv.FormatBool(ok)).Inc()
}
