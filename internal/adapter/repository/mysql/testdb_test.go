package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lending-core/internal/domain/application"
	"lending-core/internal/domain/customer"
	"lending-core/internal/domain/product"
	"lending-core/internal/domain/repayment"
	"lending-core/pkg/id"
)

// openTestDB returns an in-memory sqlite DB with every table migrated.
// One connection keeps the in-memory schema shared and serializes transactions.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&product.Product{}, &application.Application{}, &repayment.Repayment{}, &customer.Customer{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

var fixedNow = time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)

func makeProduct(max int64) *product.Product {
	return &product.Product{
		ProductID:    id.NewID32(),
		Name:         "Home Loan",
		InterestRate: decimal.RequireFromString("7.5"),
		MaxAmount:    decimal.NewFromInt(max),
		TenureMonths: 240,
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}
}

func makeApplication(productID, customerID string, requested int64, status application.Status) *application.Application {
	return &application.Application{
		ApplicationID:   id.NewID32(),
		CustomerID:      customerID,
		ProductID:       productID,
		RequestedAmount: decimal.NewFromInt(requested),
		Status:          status,
		CreatedAt:       fixedNow,
		UpdatedAt:       fixedNow,
	}
}

func makeRepayment(applicationID string, amount string, at time.Time) *repayment.Repayment {
	return &repayment.Repayment{
		RepaymentID:   id.NewID32(),
		ApplicationID: applicationID,
		AmountPaid:    decimal.RequireFromString(amount),
		PaymentStatus: repayment.PaymentPending,
		PaymentDate:   at,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}
