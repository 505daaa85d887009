package application

import (
	"time"

	"github.com/shopspring/decimal"

	domain "lending-core/internal/domain/application"
)

type CreateApplicationInput struct {
	CustomerID      string
	ProductID       string
	RequestedAmount decimal.Decimal
}

type UpdateStatusInput struct {
	ApplicationID  string
	Status         domain.Status
	ApprovedAmount *decimal.Decimal
	ProcessedBy    *string
}

type ApplicationDTO struct {
	ApplicationID   string              `json:"application_id"`
	CustomerID      string              `json:"customer_id"`
	ProductID       string              `json:"product_id"`
	RequestedAmount decimal.Decimal     `json:"requested_amount"`
	ApprovedAmount  decimal.NullDecimal `json:"approved_amount"`
	Status          domain.Status       `json:"status"`
	ProcessedBy     *string             `json:"processed_by,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func toDTO(a *domain.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		CustomerID:      a.CustomerID,
		ProductID:       a.ProductID,
		RequestedAmount: a.RequestedAmount,
		ApprovedAmount:  a.ApprovedAmount,
		Status:          a.Status,
		ProcessedBy:     a.ProcessedBy,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toDTOs(rows []domain.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out
}
