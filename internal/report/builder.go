package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edvin/trafficbot/internal/model"
)

const (
	reportHeader     = "*BandwagonHost VPS traffic report*"
	segmentSeparator = "\n------\n"

	// Shown instead of a report when no credentials are configured.
	noCredentialsMsg = "Error: no VPS credentials configured. Set `BWH_CREDENTIALS` to one or more `veid:api_key` pairs."
)

// Fetcher yields the provider's service info for one instance.
type Fetcher interface {
	ServiceInfo(ctx context.Context, veid, apiKey string) (*model.ServiceInfo, error)
}

// Builder assembles one combined traffic report for the configured
// credential list. Stateless between builds; safe for concurrent use.
type Builder struct {
	fetcher     Fetcher
	credentials []model.Credential
	location    *time.Location
	logger      zerolog.Logger
	now         func() time.Time
}

func NewBuilder(fetcher Fetcher, credentials []model.Credential, location *time.Location, logger zerolog.Logger) *Builder {
	return &Builder{
		fetcher:     fetcher,
		credentials: credentials,
		location:    location,
		logger:      logger,
		now:         time.Now,
	}
}

// Build fetches every configured instance in order and folds the results
// into one report. A failed fetch becomes a labelled error segment; the
// report itself never fails.
func (b *Builder) Build(ctx context.Context) string {
	if len(b.credentials) == 0 {
		return noCredentialsMsg
	}

	buildID := uuid.NewString()
	logger := b.logger.With().Str("build_id", buildID).Logger()
	now := b.now()

	parts := []string{reportHeader}
	for _, cred := range b.credentials {
		info, err := b.fetcher.ServiceInfo(ctx, cred.VEID, cred.APIKey)
		if err != nil {
			logger.Warn().Err(err).Str("veid", cred.VEID).Msg("fetch failed")
			reportSegmentsTotal.WithLabelValues("error").Inc()
			parts = append(parts, errorSegment(cred.VEID, err))
			continue
		}

		reportSegmentsTotal.WithLabelValues("ok").Inc()
		parts = append(parts, b.metricsSegment(info, now))
	}

	reportsBuiltTotal.Inc()
	logger.Info().Int("segments", len(parts)-1).Msg("report built")

	return strings.Join(parts, segmentSeparator)
}

func errorSegment(veid string, err error) string {
	return fmt.Sprintf("*VPS (VEID: `%s`)*\nQuery failed: `%s`", veid, err.Error())
}

func (b *Builder) metricsSegment(info *model.ServiceInfo, now time.Time) string {
	m := Metrics(info, now)
	resetDate := time.Unix(info.DataNextReset, 0).In(b.location).Format("2006-01-02")

	return fmt.Sprintf(
		"*Host:* `%s`\n*Plan:* `%s`\nUsed: `%.2f GB` / `%.2f GB`\nUsage: `%.2f%%` %s\nCycle time: `%.1f%%` %s\nResets: `%s`",
		info.Hostname,
		info.Plan,
		m.UsedGB,
		m.TotalGB,
		m.UsagePercent,
		Gauge(m.UsagePercent, DefaultGaugeWidth),
		m.TimePercent,
		Gauge(m.TimePercent, DefaultGaugeWidth),
		resetDate,
	)
}
