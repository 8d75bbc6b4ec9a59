package bwh

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bwh_fetches_total",
		Help: "Provider fetches by outcome",
	},
	[]string{"outcome"},
)
