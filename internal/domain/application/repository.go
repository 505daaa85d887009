package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// GetByApplicationIDForUpdate locks the row until the surrounding transaction ends.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	List(ctx context.Context, offset, limit int) ([]Application, error)
	ListByCustomer(ctx context.Context, customerID string, offset, limit int) ([]Application, error)
	ListByStatus(ctx context.Context, status Status, offset, limit int) ([]Application, error)
	CountByProduct(ctx context.Context, productID string) (int64, error)
	Save(ctx context.Context, a *Application) error
}
