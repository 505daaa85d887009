package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domain "lending-core/internal/domain/product"
	"lending-core/internal/domain/page"
	"lending-core/internal/domain/uow"
	"lending-core/internal/infrastructure/logging"
	"lending-core/pkg/apperror"
	"lending-core/pkg/id"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
	now  func() time.Time
	log  logrus.FieldLogger
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func WithLogger(l logrus.FieldLogger) Option { return func(u *Usecase) { u.log = l } }

// NewUsecase: repo serves reads, tx wraps read-modify-write flows.
func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		repo: repo,
		uow:  tx,
		now:  func() time.Time { return time.Now().UTC() },
		log:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func notFound(productID string) error {
	return apperror.NotFoundf("loan product %s not found", productID)
}

func (u *Usecase) Create(ctx context.Context, in CreateProductInput) (*ProductDTO, error) {
	now := u.now()
	p := &domain.Product{
		ProductID:    id.NewID32(),
		Name:         strings.TrimSpace(in.Name),
		InterestRate: in.InterestRate,
		MaxAmount:    in.MaxAmount,
		TenureMonths: in.TenureMonths,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	u.log.WithField("product_id", p.ProductID).Info("loan product created")
	return toDTO(p), nil
}

func (u *Usecase) Get(ctx context.Context, productID string) (*ProductDTO, error) {
	p, err := u.repo.GetByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(productID)
		}
		return nil, err
	}
	return toDTO(p), nil
}

func (u *Usecase) List(ctx context.Context, skip, limit int) ([]ProductDTO, error) {
	if err := page.Validate(skip, limit); err != nil {
		return nil, err
	}
	rows, err := u.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) Count(ctx context.Context) (int64, error) {
	return u.repo.Count(ctx)
}

// Update re-validates every supplied field with the creation rules.
func (u *Usecase) Update(ctx context.Context, productID string, in UpdateProductInput) (*ProductDTO, error) {
	var dto *ProductDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Products.GetByProductID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(productID)
			}
			return err
		}

		if in.Name != nil {
			if err := domain.ValidateName(*in.Name); err != nil {
				return err
			}
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.InterestRate != nil {
			if err := domain.ValidateInterestRate(*in.InterestRate); err != nil {
				return err
			}
			p.InterestRate = *in.InterestRate
		}
		if in.MaxAmount != nil {
			if err := domain.ValidateMaxAmount(*in.MaxAmount); err != nil {
				return err
			}
			p.MaxAmount = *in.MaxAmount
		}
		if in.TenureMonths != nil {
			if err := domain.ValidateTenure(*in.TenureMonths); err != nil {
				return err
			}
			p.TenureMonths = *in.TenureMonths
		}
		if in.Description != nil {
			p.Description = in.Description
		}
		p.UpdatedAt = u.now()

		if err := r.Products.Save(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete refuses products that any application still references.
func (u *Usecase) Delete(ctx context.Context, productID string) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Products.GetByProductID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(productID)
			}
			return err
		}
		n, err := r.Applications.CountByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperror.Validationf("loan product %s is referenced by %d loan application(s) and cannot be deleted", productID, n)
		}
		return r.Products.Delete(ctx, p)
	})
	if err != nil {
		return err
	}
	u.log.WithField("product_id", productID).Info("loan product deleted")
	return nil
}
