package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lending-core/internal/domain/repayment"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository { return &RepaymentRepository{db: db} }

func (r *RepaymentRepository) Create(ctx context.Context, rp *repayment.Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *RepaymentRepository) GetByRepaymentID(ctx context.Context, repaymentID string) (*repayment.Repayment, error) {
	var out repayment.Repayment
	if err := r.db.WithContext(ctx).Where("repayment_id = ?", repaymentID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RepaymentRepository) ListByApplication(ctx context.Context, applicationID string, offset, limit int) ([]repayment.Repayment, error) {
	var out []repayment.Repayment
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("payment_date ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *RepaymentRepository) CountByApplication(ctx context.Context, applicationID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&repayment.Repayment{}).Where("application_id = ?", applicationID).Count(&n).Error
	return n, err
}

// TotalByApplication adds amounts in Go so the sum stays exact regardless of the driver's SUM type.
func (r *RepaymentRepository) TotalByApplication(ctx context.Context, applicationID string) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&repayment.Repayment{}).
		Where("application_id = ?", applicationID).
		Pluck("amount_paid", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

func (r *RepaymentRepository) Save(ctx context.Context, rp *repayment.Repayment) error {
	return r.db.WithContext(ctx).Save(rp).Error
}
