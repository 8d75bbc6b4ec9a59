package model

// ServiceInfo is the successful result of one getServiceInfo call.
// Field names follow the provider's wire schema; absent numeric fields
// decode to zero.
type ServiceInfo struct {
	Hostname        string `json:"hostname"`
	Plan            string `json:"plan"`
	PlanMonthlyData int64  `json:"plan_monthly_data"`
	DataCounter     int64  `json:"data_counter"`
	DataNextReset   int64  `json:"data_next_reset"`
}

// UsageMetrics is derived from a ServiceInfo and the current wall clock.
// Recomputed on every report, never cached.
type UsageMetrics struct {
	UsedGB       float64 `json:"used_gb"`
	TotalGB      float64 `json:"total_gb"`
	UsagePercent float64 `json:"usage_percent"`
	TimePercent  float64 `json:"time_percent"`
}
