package mysql

import (
	"context"

	"gorm.io/gorm"

	"lending-core/internal/domain/customer"
)

// CustomerDirectory reads the customers table owned by the identity service.
type CustomerDirectory struct{ db *gorm.DB }

func NewCustomerDirectory(db *gorm.DB) *CustomerDirectory { return &CustomerDirectory{db: db} }

func (d *CustomerDirectory) Exists(ctx context.Context, customerID string) (bool, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&customer.Customer{}).Where("customer_id = ?", customerID).Limit(1).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
