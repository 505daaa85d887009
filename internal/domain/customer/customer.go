package customer

import (
	"context"
	"time"
)

// Customer is owned by the identity service; this service only reads it.
type Customer struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	CustomerID string    `gorm:"size:64;column:customer_id;uniqueIndex:ux_customers_customer_id" json:"customer_id"`
	Name       string    `gorm:"size:100;column:name" json:"name"`
	Email      string    `gorm:"size:255;column:email" json:"email"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Customer) TableName() string { return "customers" }

// Directory answers whether a customer reference is valid.
type Directory interface {
	Exists(ctx context.Context, customerID string) (bool, error)
}
