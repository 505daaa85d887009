package productmock

import (
	"context"

	domain "lending-core/internal/domain/product"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock of product.Repository.
// Unset reads return context.Canceled; unset writes succeed.
type Repo struct {
	CreateFn         func(ctx context.Context, p *domain.Product) error
	GetByProductIDFn func(ctx context.Context, productID string) (*domain.Product, error)
	ListFn           func(ctx context.Context, offset, limit int) ([]domain.Product, error)
	CountFn          func(ctx context.Context) (int64, error)
	SaveFn           func(ctx context.Context, p *domain.Product) error
	DeleteFn         func(ctx context.Context, p *domain.Product) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByProductID(ctx context.Context, productID string) (*domain.Product, error) {
	if m.GetByProductIDFn != nil {
		return m.GetByProductIDFn(ctx, productID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.Product) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, p *domain.Product) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, p)
	}
	return nil
}
