package report

import (
	"math"
	"time"

	"github.com/edvin/trafficbot/internal/cycle"
	"github.com/edvin/trafficbot/internal/model"
)

// ToGB converts a byte count to gigabytes (2^30), rounded to two decimals.
func ToGB(bytes int64) float64 {
	return math.Round(float64(bytes)/(1<<30)*100) / 100
}

// UsagePercent is 100*counter/total rounded to two decimals, or 0 when the
// plan total is missing or non-positive.
func UsagePercent(counter, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(100*float64(counter)/float64(total)*100) / 100
}

// Metrics derives usage and time-progress figures from a service info
// snapshot and the current wall clock.
func Metrics(info *model.ServiceInfo, now time.Time) model.UsageMetrics {
	end := time.Unix(info.DataNextReset, 0).UTC()
	start := cycle.Start(end)

	return model.UsageMetrics{
		UsedGB:       ToGB(info.DataCounter),
		TotalGB:      ToGB(info.PlanMonthlyData),
		UsagePercent: UsagePercent(info.DataCounter, info.PlanMonthlyData),
		TimePercent:  cycle.TimePercent(start, end, now.UTC()),
	}
}
