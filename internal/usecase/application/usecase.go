package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domain "lending-core/internal/domain/application"
	"lending-core/internal/domain/customer"
	"lending-core/internal/domain/event"
	"lending-core/internal/domain/money"
	"lending-core/internal/domain/page"
	"lending-core/internal/domain/product"
	"lending-core/internal/domain/uow"
	"lending-core/internal/infrastructure/logging"
	"lending-core/pkg/apperror"
	"lending-core/pkg/id"
)

// Metrics is the subset of instrumentation the workflow reports to.
type Metrics interface {
	StatusChanged(from, to string)
}

type nopMetrics struct{}

func (nopMetrics) StatusChanged(string, string) {}

type Usecase struct {
	apps      domain.Repository
	customers customer.Directory
	uow       uow.UnitOfWork

	now     func() time.Time
	log     logrus.FieldLogger
	pub     event.Publisher
	metrics Metrics
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func WithLogger(l logrus.FieldLogger) Option { return func(u *Usecase) { u.log = l } }

func WithPublisher(p event.Publisher) Option { return func(u *Usecase) { u.pub = p } }

func WithMetrics(m Metrics) Option { return func(u *Usecase) { u.metrics = m } }

func NewUsecase(apps domain.Repository, customers customer.Directory, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		apps:      apps,
		customers: customers,
		uow:       tx,
		now:       func() time.Time { return time.Now().UTC() },
		log:       logging.Discard(),
		pub:       event.Nop{},
		metrics:   nopMetrics{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func notFound(applicationID string) error {
	return apperror.NotFoundf("loan application %s not found", applicationID)
}

func (u *Usecase) requireCustomer(ctx context.Context, customerID string) error {
	ok, err := u.customers.Exists(ctx, customerID)
	if err != nil {
		return fmt.Errorf("check customer %s: %w", customerID, err)
	}
	if !ok {
		return apperror.NotFoundf("customer %s not found", customerID)
	}
	return nil
}

func loadProduct(ctx context.Context, r uow.Repos, productID string) (*product.Product, error) {
	p, err := r.Products.GetByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("loan product %s not found", productID)
		}
		return nil, err
	}
	return p, nil
}

// Create opens a PENDING application after checking the customer, the product and its ceiling.
func (u *Usecase) Create(ctx context.Context, in CreateApplicationInput) (*ApplicationDTO, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	if err := u.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	var a *domain.Application
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := loadProduct(ctx, r, in.ProductID)
		if err != nil {
			return err
		}
		if !in.RequestedAmount.IsPositive() {
			return apperror.Validationf("requested amount must be greater than 0")
		}
		if err := money.CheckScale("requested amount", in.RequestedAmount); err != nil {
			return err
		}
		if in.RequestedAmount.GreaterThan(p.MaxAmount) {
			return apperror.Validationf("requested amount cannot exceed product maximum of %s", p.MaxAmount)
		}

		now := u.now()
		a = &domain.Application{
			ApplicationID:   id.NewID32(),
			CustomerID:      customerID,
			ProductID:       p.ProductID,
			RequestedAmount: in.RequestedAmount,
			Status:          domain.StatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return r.Applications.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"application_id": a.ApplicationID,
		"customer_id":    a.CustomerID,
		"product_id":     a.ProductID,
	}).Info("loan application created")
	u.publish(ctx, event.Event{
		Type:          event.TypeApplicationCreated,
		ApplicationID: a.ApplicationID,
		Status:        string(a.Status),
		Amount:        decimal.NewNullDecimal(a.RequestedAmount),
		OccurredAt:    a.CreatedAt,
	})
	return toDTO(a), nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(applicationID)
		}
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) List(ctx context.Context, skip, limit int) ([]ApplicationDTO, error) {
	if err := page.Validate(skip, limit); err != nil {
		return nil, err
	}
	rows, err := u.apps.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

func (u *Usecase) ListByCustomer(ctx context.Context, customerID string, skip, limit int) ([]ApplicationDTO, error) {
	if err := page.Validate(skip, limit); err != nil {
		return nil, err
	}
	if err := u.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	rows, err := u.apps.ListByCustomer(ctx, customerID, skip, limit)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

// UpdateStatus applies a caller-requested transition under the application row lock.
// CLOSED is reserved for the repayment ledger.
func (u *Usecase) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*ApplicationDTO, error) {
	to := in.Status
	if !to.Valid() {
		return nil, apperror.Validationf("unknown application status %q", to)
	}
	if to == domain.StatusClosed {
		return nil, apperror.Validationf("status CLOSED is set by the repayment ledger and cannot be requested")
	}
	if in.ApprovedAmount != nil && to != domain.StatusApproved {
		return nil, apperror.Validationf("approved amount can only be supplied when approving")
	}

	var (
		from domain.Status
		out  *domain.Application
	)
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		from = a.Status
		if to == domain.StatusDisbursed && from != domain.StatusApproved {
			return apperror.Validationf("can only disburse approved applications; application is %s", from)
		}
		if !domain.CanTransition(from, to) {
			return apperror.Validationf("cannot move application from %s to %s", from, to)
		}

		if to == domain.StatusApproved {
			if err := u.checkApproval(ctx, r, a, in.ApprovedAmount); err != nil {
				return err
			}
			a.ApprovedAmount = decimal.NewNullDecimal(*in.ApprovedAmount)
		}
		if in.ProcessedBy != nil && strings.TrimSpace(*in.ProcessedBy) != "" {
			who := strings.TrimSpace(*in.ProcessedBy)
			a.ProcessedBy = &who
		}
		a.Status = to
		a.UpdatedAt = u.now()
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(in.ApplicationID)
		}
		return nil, err
	}

	u.metrics.StatusChanged(string(from), string(to))
	u.log.WithFields(logrus.Fields{
		"application_id": out.ApplicationID,
		"from":           from,
		"to":             to,
	}).Info("loan application status changed")
	u.publish(ctx, event.Event{
		Type:          event.TypeStatusChanged,
		ApplicationID: out.ApplicationID,
		Status:        string(to),
		Amount:        out.ApprovedAmount,
		OccurredAt:    out.UpdatedAt,
	})
	return toDTO(out), nil
}

func (u *Usecase) checkApproval(ctx context.Context, r uow.Repos, a *domain.Application, amount *decimal.Decimal) error {
	if amount == nil {
		return apperror.Validationf("approved amount is required when approving")
	}
	if !amount.IsPositive() {
		return apperror.Validationf("approved amount must be greater than 0")
	}
	if err := money.CheckScale("approved amount", *amount); err != nil {
		return err
	}
	p, err := loadProduct(ctx, r, a.ProductID)
	if err != nil {
		return err
	}
	if amount.GreaterThan(p.MaxAmount) {
		return apperror.Validationf("approved amount exceeds product maximum of %s", p.MaxAmount)
	}
	if amount.GreaterThan(a.RequestedAmount) {
		return apperror.Validationf("approved amount exceeds requested amount of %s", a.RequestedAmount)
	}
	return nil
}

// CloseWithin moves a disbursed application to CLOSED inside the caller's transaction.
// The caller must hold the application lock.
func (u *Usecase) CloseWithin(ctx context.Context, r uow.Repos, a *domain.Application) error {
	if !domain.CanTransition(a.Status, domain.StatusClosed) {
		return apperror.Validationf("cannot move application from %s to %s", a.Status, domain.StatusClosed)
	}
	a.Status = domain.StatusClosed
	a.UpdatedAt = u.now()
	return r.Applications.Save(ctx, a)
}

// publish is best effort: the state change already committed.
func (u *Usecase) publish(ctx context.Context, evs ...event.Event) {
	if err := u.pub.Publish(ctx, evs...); err != nil {
		u.log.WithError(err).Warn("publish application events")
	}
}
