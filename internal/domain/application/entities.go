package application

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusDisbursed Status = "DISBURSED"
	StatusClosed    Status = "CLOSED"
)

// transitions is the only source of truth for legal status changes.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusDisbursed},
	StatusDisbursed: {StatusClosed},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDisbursed, StatusClosed:
		return true
	}
	return false
}

func (s Status) Terminal() bool { return s == StatusRejected || s == StatusClosed }

// CanTransition reports whether from → to is in the transition table.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RepaymentEligible reports whether the ledger may post against an application in status s.
func (s Status) RepaymentEligible() bool { return s == StatusDisbursed }

type Application struct {
	ID              uint64              `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID   string              `gorm:"size:32;column:application_id;uniqueIndex:ux_loan_applications_application_id" json:"application_id"`
	CustomerID      string              `gorm:"size:64;column:customer_id;index:idx_loan_applications_customer" json:"customer_id"`
	ProductID       string              `gorm:"size:32;column:product_id;index:idx_loan_applications_product" json:"product_id"`
	RequestedAmount decimal.Decimal     `gorm:"type:decimal(18,2);column:requested_amount" json:"requested_amount"`
	ApprovedAmount  decimal.NullDecimal `gorm:"type:decimal(18,2);column:approved_amount" json:"approved_amount"`
	Status          Status              `gorm:"size:16;column:status;index:idx_loan_applications_status" json:"status"`
	ProcessedBy     *string             `gorm:"size:64;column:processed_by" json:"processed_by,omitempty"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }
