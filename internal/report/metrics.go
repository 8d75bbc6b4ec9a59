package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsBuiltTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_built_total",
			Help: "Total number of traffic reports built",
		},
	)

	reportSegmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_segments_total",
			Help: "Report segments by result",
		},
		[]string{"result"},
	)
)
