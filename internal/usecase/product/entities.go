package product

import (
	"time"

	"github.com/shopspring/decimal"

	domain "lending-core/internal/domain/product"
)

type CreateProductInput struct {
	Name         string
	InterestRate decimal.Decimal
	MaxAmount    decimal.Decimal
	TenureMonths int
	Description  *string
}

// UpdateProductInput carries only the fields the caller wants to change.
type UpdateProductInput struct {
	Name         *string
	InterestRate *decimal.Decimal
	MaxAmount    *decimal.Decimal
	TenureMonths *int
	Description  *string
}

type ProductDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	MaxAmount    decimal.Decimal `json:"max_amount"`
	TenureMonths int             `json:"tenure_months"`
	Description  *string         `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toDTO(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ProductID:    p.ProductID,
		Name:         p.Name,
		InterestRate: p.InterestRate,
		MaxAmount:    p.MaxAmount,
		TenureMonths: p.TenureMonths,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
