package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var deliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "deliveries_total",
		Help: "Outbound deliveries by path and result",
	},
	[]string{"path", "result"},
)
