// Package cycle infers billing-cycle boundaries from the provider's reset
// timestamp. The provider only reports when the cycle ends; the start is
// approximated by walking back one calendar month.
package cycle

import (
	"math"
	"time"
)

// Start infers the cycle start from the cycle end: same day-of-month in the
// previous month, or the previous month's last day when that day does not
// exist (a cycle ending March 31 starts on the last day of February).
// All arithmetic is in UTC.
func Start(cycleEnd time.Time) time.Time {
	end := cycleEnd.UTC()
	firstOfMonth := time.Date(end.Year(), end.Month(), 1, end.Hour(), end.Minute(), end.Second(), end.Nanosecond(), time.UTC)
	lastOfPrev := firstOfMonth.AddDate(0, 0, -1)

	if day := end.Day(); day <= daysIn(lastOfPrev.Year(), lastOfPrev.Month()) {
		return time.Date(lastOfPrev.Year(), lastOfPrev.Month(), day, end.Hour(), end.Minute(), end.Second(), end.Nanosecond(), time.UTC)
	}
	return lastOfPrev
}

// TimePercent returns how far now lies between start and end, as a
// percentage clamped to [0, 100] and rounded to one decimal.
// A non-positive cycle duration yields 0.
func TimePercent(start, end, now time.Time) float64 {
	duration := end.Sub(start).Seconds()
	if duration <= 0 {
		return 0
	}

	raw := 100 * now.Sub(start).Seconds() / duration
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	return math.Round(raw*10) / 10
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
