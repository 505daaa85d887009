package event

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeApplicationCreated Type = "application.created"
	TypeStatusChanged      Type = "application.status_changed"
	TypeApplicationClosed  Type = "application.closed"
	TypeRepaymentRecorded  Type = "repayment.recorded"
)

// Event describes a lifecycle change of a loan application.
type Event struct {
	Type          Type                `json:"type"`
	ApplicationID string              `json:"application_id"`
	RepaymentID   string              `json:"repayment_id,omitempty"`
	Status        string              `json:"status"`
	Amount        decimal.NullDecimal `json:"amount"`
	OccurredAt    time.Time           `json:"occurred_at"`
}

// Publisher delivers events after the owning transaction committed.
type Publisher interface {
	Publish(ctx context.Context, evs ...Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, ...Event) error { return nil }
