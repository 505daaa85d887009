package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByProductID(ctx context.Context, productID string) (*Product, error)
	List(ctx context.Context, offset, limit int) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, p *Product) error
}
