package repayment

import (
	"time"

	"github.com/shopspring/decimal"

	domain "lending-core/internal/domain/repayment"
)

type RecordRepaymentInput struct {
	ApplicationID string
	AmountPaid    decimal.Decimal
	// PaymentStatus defaults to PENDING when empty.
	PaymentStatus domain.PaymentStatus
}

type RepaymentDTO struct {
	RepaymentID   string               `json:"repayment_id"`
	ApplicationID string               `json:"application_id"`
	AmountPaid    decimal.Decimal      `json:"amount_paid"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	PaymentDate   time.Time            `json:"payment_date"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// BalanceDTO is the ledger position of one application.
type BalanceDTO struct {
	ApplicationID      string              `json:"application_id"`
	ApprovedAmount     decimal.NullDecimal `json:"approved_amount"`
	TotalRepaid        decimal.Decimal     `json:"total_repaid"`
	OutstandingBalance decimal.Decimal     `json:"outstanding_balance"`
}

func toDTO(r *domain.Repayment) *RepaymentDTO {
	return &RepaymentDTO{
		RepaymentID:   r.RepaymentID,
		ApplicationID: r.ApplicationID,
		AmountPaid:    r.AmountPaid,
		PaymentStatus: r.PaymentStatus,
		PaymentDate:   r.PaymentDate,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
