package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lending-core/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*application.Application, error) {
	var out application.Application
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByApplicationIDForUpdate issues SELECT ... FOR UPDATE; it must run inside a transaction.
func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*application.Application, error) {
	var out application.Application
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ApplicationRepository) List(ctx context.Context, offset, limit int) ([]application.Application, error) {
	var out []application.Application
	err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) ListByCustomer(ctx context.Context, customerID string, offset, limit int) ([]application.Application, error) {
	var out []application.Application
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) ListByStatus(ctx context.Context, status application.Status, offset, limit int) ([]application.Application, error) {
	var out []application.Application
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&application.Application{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

func (r *ApplicationRepository) Save(ctx context.Context, a *application.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}
