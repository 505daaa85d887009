package repayment

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
)

func (s PaymentStatus) Valid() bool { return s == PaymentPending || s == PaymentCompleted }

// CanTransition only allows a pending posting to settle.
func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	return s == PaymentPending && to == PaymentCompleted
}

type Repayment struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID   string          `gorm:"size:32;column:repayment_id;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	ApplicationID string          `gorm:"size:32;column:application_id;index:idx_repayments_application" json:"application_id"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(18,2);column:amount_paid" json:"amount_paid"`
	PaymentStatus PaymentStatus   `gorm:"size:16;column:payment_status" json:"payment_status"`
	PaymentDate   time.Time       `gorm:"column:payment_date" json:"payment_date"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Repayment) TableName() string { return "repayments" }
