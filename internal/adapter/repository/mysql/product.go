package mysql

import (
	"context"

	"gorm.io/gorm"

	"lending-core/internal/domain/product"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) GetByProductID(ctx context.Context, productID string) (*product.Product, error) {
	var out product.Product
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepository) List(ctx context.Context, offset, limit int) ([]product.Product, error) {
	var out []product.Product
	err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&product.Product{}).Count(&n).Error
	return n, err
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) Delete(ctx context.Context, p *product.Product) error {
	return r.db.WithContext(ctx).Delete(p).Error
}
