package uow

import (
	"context"

	"lending-core/internal/domain/application"
	"lending-core/internal/domain/product"
	"lending-core/internal/domain/repayment"
)

// Repos are bound to one transaction.
type Repos struct {
	Products     product.Repository
	Applications application.Repository
	Repayments   repayment.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinApplicationTx locks the application row first, then hands it to fn.
	// Writers on the same application serialize on that lock.
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
