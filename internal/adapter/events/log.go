package events

import (
	"context"

	"github.com/sirupsen/logrus"

	"lending-core/internal/domain/event"
)

// LogPublisher writes events to the log; used when no broker is configured.
type LogPublisher struct{ log logrus.FieldLogger }

func NewLogPublisher(log logrus.FieldLogger) *LogPublisher { return &LogPublisher{log: log} }

func (p *LogPublisher) Publish(_ context.Context, evs ...event.Event) error {
	for _, ev := range evs {
		fields := logrus.Fields{
			"event":          ev.Type,
			"application_id": ev.ApplicationID,
			"status":         ev.Status,
			"occurred_at":    ev.OccurredAt,
		}
		if ev.RepaymentID != "" {
			fields["repayment_id"] = ev.RepaymentID
		}
		if ev.Amount.Valid {
			fields["amount"] = ev.Amount.Decimal.String()
		}
		p.log.WithFields(fields).Info("lifecycle event")
	}
	return nil
}
