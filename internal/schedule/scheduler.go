// Package schedule fires recurring report deliveries: one cron job per
// (recipient × configured hour), evaluated in the display timezone.
package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/edvin/trafficbot/internal/model"
)

// FireFunc handles one scheduled firing. It must not panic; delivery
// failures are its own concern and never unschedule the job.
type FireFunc func(job model.ScheduledJob)

type Scheduler struct {
	cron   *cron.Cron
	jobs   []model.ScheduledJob
	logger zerolog.Logger
}

// New builds the job table from the cross product of recipients and hours.
// The table is immutable for the process lifetime. With an empty recipient
// or hour set no jobs exist and Start is a no-op.
func New(recipients []int64, hours []int, loc *time.Location, fire FireFunc, logger zerolog.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(loc))

	var jobs []model.ScheduledJob
	for _, recipient := range recipients {
		for _, hour := range hours {
			job := model.ScheduledJob{Recipient: recipient, Hour: hour}
			spec := fmt.Sprintf("0 %d * * *", hour)
			if _, err := c.AddFunc(spec, func() {
				logger.Info().Int64("recipient", job.Recipient).Int("hour", job.Hour).Msg("scheduled report firing")
				fire(job)
			}); err != nil {
				return nil, fmt.Errorf("schedule job for recipient %d at hour %d: %w", recipient, hour, err)
			}
			jobs = append(jobs, job)
		}
	}

	return &Scheduler{cron: c, jobs: jobs, logger: logger}, nil
}

func (s *Scheduler) Start() {
	if len(s.jobs) == 0 {
		s.logger.Info().Msg("no scheduled jobs configured")
		return
	}
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.jobs)).Msg("scheduler started")
}

// Stop halts the timer and waits for any in-flight firing to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Jobs returns the job table. Read-only after startup.
func (s *Scheduler) Jobs() []model.ScheduledJob {
	return s.jobs
}
