package repayment

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, r *Repayment) error
	GetByRepaymentID(ctx context.Context, repaymentID string) (*Repayment, error)
	ListByApplication(ctx context.Context, applicationID string, offset, limit int) ([]Repayment, error)
	CountByApplication(ctx context.Context, applicationID string) (int64, error)
	// TotalByApplication sums amount_paid over every posting, pending or completed.
	TotalByApplication(ctx context.Context, applicationID string) (decimal.Decimal, error)
	Save(ctx context.Context, r *Repayment) error
}
