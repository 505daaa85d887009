package product

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"lending-core/internal/domain/money"
	"lending-core/pkg/apperror"
)

const (
	MaxNameLength   = 100
	MaxTenureMonths = 360
)

// MaxInterestRate is the annual rate ceiling, in percent.
var MaxInterestRate = decimal.NewFromInt(50)

type Product struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"-"`
	ProductID    string          `gorm:"size:32;column:product_id;uniqueIndex:ux_loan_products_product_id" json:"product_id"`
	Name         string          `gorm:"size:100;column:name" json:"name"`
	InterestRate decimal.Decimal `gorm:"type:decimal(5,2);column:interest_rate" json:"interest_rate"`
	MaxAmount    decimal.Decimal `gorm:"type:decimal(18,2);column:max_amount" json:"max_amount"`
	TenureMonths int             `gorm:"column:tenure_months" json:"tenure_months"`
	Description  *string         `gorm:"type:text;column:description" json:"description,omitempty"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Product) TableName() string { return "loan_products" }

func ValidateName(name string) error {
	n := strings.TrimSpace(name)
	if n == "" {
		return apperror.Validationf("product name must not be empty")
	}
	if utf8.RuneCountInString(n) > MaxNameLength {
		return apperror.Validationf("product name must be at most %d characters", MaxNameLength)
	}
	return nil
}

func ValidateInterestRate(rate decimal.Decimal) error {
	if !rate.IsPositive() || rate.GreaterThan(MaxInterestRate) {
		return apperror.Validationf("interest rate must be greater than 0 and at most %s", MaxInterestRate)
	}
	return money.CheckScale("interest rate", rate)
}

func ValidateMaxAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.Validationf("maximum amount must be greater than 0")
	}
	return money.CheckScale("maximum amount", amount)
}

func ValidateTenure(months int) error {
	if months <= 0 || months > MaxTenureMonths {
		return apperror.Validationf("tenure must be between 1 and %d months", MaxTenureMonths)
	}
	return nil
}

// Validate checks every field rule a product must satisfy.
func (p *Product) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := ValidateInterestRate(p.InterestRate); err != nil {
		return err
	}
	if err := ValidateMaxAmount(p.MaxAmount); err != nil {
		return err
	}
	return ValidateTenure(p.TenureMonths)
}
