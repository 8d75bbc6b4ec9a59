package model

// ScheduledJob is one recurring report delivery: recipient × hour-of-day.
// Jobs are created once at startup and live for the process lifetime.
type ScheduledJob struct {
	Recipient int64 `json:"recipient"`
	Hour      int   `json:"hour"`
}
