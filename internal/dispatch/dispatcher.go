// Package dispatch connects report building to the chat transport: the
// on-demand command path, the scheduled path and the startup notice.
package dispatch

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edvin/trafficbot/internal/model"
)

const startupNotice = "trafficbot online. Send /traffic for a usage report."

// Transport is the chat collaborator: deliver text to a recipient and
// check whether an identity is authorized.
type Transport interface {
	Deliver(ctx context.Context, recipient int64, text string) error
	Authorize(identity int64) bool
}

// ReportSource builds one combined traffic report.
type ReportSource interface {
	Build(ctx context.Context) string
}

type Dispatcher struct {
	builder    ReportSource
	transport  Transport
	recipients []int64
	logger     zerolog.Logger
}

func New(builder ReportSource, transport Transport, recipients []int64, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		builder:    builder,
		transport:  transport,
		recipients: recipients,
		logger:     logger,
	}
}

// HandleReportRequest serves a manual report command. Unauthorized
// identities get nothing built and nothing delivered (fail closed).
func (d *Dispatcher) HandleReportRequest(ctx context.Context, requester int64) {
	if !d.transport.Authorize(requester) {
		d.logger.Warn().Int64("identity", requester).Msg("unauthorized report request")
		deliveriesTotal.WithLabelValues("on_demand", "unauthorized").Inc()
		return
	}

	d.deliver(ctx, "on_demand", requester, d.builder.Build(ctx))
}

// HandleScheduleFire serves one scheduled job firing. The recipient was
// validated at job-creation time, so no authorization check here.
func (d *Dispatcher) HandleScheduleFire(job model.ScheduledJob) {
	ctx := context.Background()
	d.deliver(ctx, "scheduled", job.Recipient, d.builder.Build(ctx))
}

// AnnounceStartup sends the fixed service-online notice to every
// configured recipient.
func (d *Dispatcher) AnnounceStartup(ctx context.Context) {
	for _, recipient := range d.recipients {
		d.deliver(ctx, "startup", recipient, startupNotice)
	}
}

// deliver hands text to the transport. Delivery failures are logged and
// swallowed; they never propagate to the scheduler or other recipients.
func (d *Dispatcher) deliver(ctx context.Context, path string, recipient int64, text string) {
	if err := d.transport.Deliver(ctx, recipient, text); err != nil {
		d.logger.Error().Err(err).Str("path", path).Int64("recipient", recipient).Msg("delivery failed")
		deliveriesTotal.WithLabelValues(path, "error").Inc()
		return
	}
	deliveriesTotal.WithLabelValues(path, "ok").Inc()
}
