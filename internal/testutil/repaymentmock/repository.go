package repaymentmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "lending-core/internal/domain/repayment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock of repayment.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, r *domain.Repayment) error
	GetByRepaymentIDFn   func(ctx context.Context, repaymentID string) (*domain.Repayment, error)
	ListByApplicationFn  func(ctx context.Context, applicationID string, offset, limit int) ([]domain.Repayment, error)
	CountByApplicationFn func(ctx context.Context, applicationID string) (int64, error)
	TotalByApplicationFn func(ctx context.Context, applicationID string) (decimal.Decimal, error)
	SaveFn               func(ctx context.Context, r *domain.Repayment) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRepaymentID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	if m.GetByRepaymentIDFn != nil {
		return m.GetByRepaymentIDFn(ctx, repaymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByApplication(ctx context.Context, applicationID string, offset, limit int) ([]domain.Repayment, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID, offset, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByApplication(ctx context.Context, applicationID string) (int64, error) {
	if m.CountByApplicationFn != nil {
		return m.CountByApplicationFn(ctx, applicationID)
	}
	return 0, context.Canceled
}

func (m *Repo) TotalByApplication(ctx context.Context, applicationID string) (decimal.Decimal, error) {
	if m.TotalByApplicationFn != nil {
		return m.TotalByApplicationFn(ctx, applicationID)
	}
	return decimal.Zero, context.Canceled
}

func (m *Repo) Save(ctx context.Context, r *domain.Repayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
