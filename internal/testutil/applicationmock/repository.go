package applicationmock

import (
	"context"

	domain "lending-core/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock of application.Repository.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	ListFn                        func(ctx context.Context, offset, limit int) ([]domain.Application, error)
	ListByCustomerFn              func(ctx context.Context, customerID string, offset, limit int) ([]domain.Application, error)
	ListByStatusFn                func(ctx context.Context, status domain.Status, offset, limit int) ([]domain.Application, error)
	CountByProductFn              func(ctx context.Context, productID string) (int64, error)
	SaveFn                        func(ctx context.Context, a *domain.Application) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, offset, limit int) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByCustomer(ctx context.Context, customerID string, offset, limit int) ([]domain.Application, error) {
	if m.ListByCustomerFn != nil {
		return m.ListByCustomerFn(ctx, customerID, offset, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status, offset, limit int) ([]domain.Application, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status, offset, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByProduct(ctx context.Context, productID string) (int64, error) {
	if m.CountByProductFn != nil {
		return m.CountByProductFn(ctx, productID)
	}
	return 0, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
