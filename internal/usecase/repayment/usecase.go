package repayment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"lending-core/internal/domain/application"
	"lending-core/internal/domain/event"
	"lending-core/internal/domain/money"
	"lending-core/internal/domain/page"
	domain "lending-core/internal/domain/repayment"
	"lending-core/internal/domain/uow"
	"lending-core/internal/infrastructure/logging"
	"lending-core/pkg/apperror"
	"lending-core/pkg/id"
)

// Closer performs the DISBURSED → CLOSED transition inside the ledger's transaction.
type Closer interface {
	CloseWithin(ctx context.Context, r uow.Repos, a *application.Application) error
}

type Metrics interface {
	RepaymentRecorded(paymentStatus string)
	LoanClosed()
	ReconcileRun()
}

type nopMetrics struct{}

func (nopMetrics) RepaymentRecorded(string) {}
func (nopMetrics) LoanClosed()              {}
func (nopMetrics) ReconcileRun()            {}

const reconcileBatch = 200

type Usecase struct {
	repayments domain.Repository
	apps       application.Repository
	uow        uow.UnitOfWork
	closer     Closer

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

func NewUsecase(repayments domain.Repository, apps application.Repository, tx uow.UnitOfWork, closer Closer, opts ...Option) *Usecase {
	u := &Usecase{
		repayments: repayments,
		apps:       apps,
		uow:        tx,
		closer:     closer,
		now:        func() time.Time { return time.Now().UTC() },
		log:        logging.Discard(),
		pub:        event.Nop{},
		metrics:    nopMetrics{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func applicationNotFound(applicationID string) error {
	return apperror.NotFoundf("loan application %s not found", applicationID)
}

func (u *Usecase) requireApplication(ctx context.Context, applicationID string) (*application.Application, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, applicationNotFound(applicationID)
		}
		return nil, err
	}
	return a, nil
}

// Record posts a repayment and closes the loan once the ledger reaches the approved amount.
// The whole read-check-write-close sequence holds the application row lock.
func (u *Usecase) Record(ctx context.Context, in RecordRepaymentInput) (*RepaymentDTO, error) {
	status := in.PaymentStatus
	if status == "" {
		status = domain.PaymentPending
	}
	if !status.Valid() {
		return nil, apperror.Validationf("unknown payment status %q", status)
	}

	var (
		rp     *domain.Repayment
		closed bool
		total  decimal.Decimal
	)
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) error {
		if !a.Status.RepaymentEligible() {
			return apperror.Validationf("repayments are only accepted for disbursed loans; application %s is %s", a.ApplicationID, a.Status)
		}
		if !in.AmountPaid.IsPositive() {
			return apperror.Validationf("repayment amount must be greater than 0")
		}
		if err := money.CheckScale("repayment amount", in.AmountPaid); err != nil {
			return err
		}

		approved := a.ApprovedAmount.Decimal
		repaid, err := r.Repayments.TotalByApplication(ctx, a.ApplicationID)
		if err != nil {
			return err
		}
		outstanding := approved.Sub(repaid)
		if in.AmountPaid.GreaterThan(outstanding) {
			return apperror.Validationf("repayment amount cannot exceed outstanding balance of %s", outstanding.StringFixed(2))
		}

		now := u.now()
		rp = &domain.Repayment{
			RepaymentID:   id.NewID32(),
			ApplicationID: a.ApplicationID,
			AmountPaid:    in.AmountPaid,
			PaymentStatus: status,
			PaymentDate:   now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}

		total, err = r.Repayments.TotalByApplication(ctx, a.ApplicationID)
		if err != nil {
			return err
		}
		if total.GreaterThanOrEqual(approved) {
			if err := u.closer.CloseWithin(ctx, r, a); err != nil {
				return err
			}
			closed = true
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, applicationNotFound(in.ApplicationID)
		}
		return nil, err
	}

	u.metrics.RepaymentRecorded(string(rp.PaymentStatus))
	fields := logrus.Fields{
		"application_id": rp.ApplicationID,
		"repayment_id":   rp.RepaymentID,
		"amount":         rp.AmountPaid.String(),
		"total_repaid":   total.String(),
	}
	u.log.WithFields(fields).Info("repayment recorded")

	evs := []event.Event{{
		Type:          event.TypeRepaymentRecorded,
		ApplicationID: rp.ApplicationID,
		RepaymentID:   rp.RepaymentID,
		Status:        string(rp.PaymentStatus),
		Amount:        decimal.NewNullDecimal(rp.AmountPaid),
		OccurredAt:    rp.PaymentDate,
	}}
	if closed {
		u.metrics.LoanClosed()
		u.log.WithFields(fields).Info("loan closed")
		evs = append(evs, closedEvent(rp.ApplicationID, total, rp.PaymentDate))
	}
	u.publish(ctx, evs...)
	return toDTO(rp), nil
}

func closedEvent(applicationID string, total decimal.Decimal, at time.Time) event.Event {
	return event.Event{
		Type:          event.TypeApplicationClosed,
		ApplicationID: applicationID,
		Status:        string(application.StatusClosed),
		Amount:        decimal.NewNullDecimal(total),
		OccurredAt:    at,
	}
}

func (u *Usecase) Get(ctx context.Context, repaymentID string) (*RepaymentDTO, error) {
	rp, err := u.repayments.GetByRepaymentID(ctx, repaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("repayment %s not found", repaymentID)
		}
		return nil, err
	}
	return toDTO(rp), nil
}

func (u *Usecase) ListByApplication(ctx context.Context, applicationID string, skip, limit int) ([]RepaymentDTO, error) {
	if err := page.Validate(skip, limit); err != nil {
		return nil, err
	}
	if _, err := u.requireApplication(ctx, applicationID); err != nil {
		return nil, err
	}
	rows, err := u.repayments.ListByApplication(ctx, applicationID, skip, limit)
	if err != nil {
		return nil, err
	}
	out := make([]RepaymentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) CountByApplication(ctx context.Context, applicationID string) (int64, error) {
	if _, err := u.requireApplication(ctx, applicationID); err != nil {
		return 0, err
	}
	return u.repayments.CountByApplication(ctx, applicationID)
}

// TotalRepaid sums every posting for the application, pending or completed.
func (u *Usecase) TotalRepaid(ctx context.Context, applicationID string) (decimal.Decimal, error) {
	return u.repayments.TotalByApplication(ctx, applicationID)
}

// Balance reports approved, repaid and outstanding amounts; outstanding is 0 before approval.
func (u *Usecase) Balance(ctx context.Context, applicationID string) (*BalanceDTO, error) {
	a, err := u.requireApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	total, err := u.repayments.TotalByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	out := &BalanceDTO{
		ApplicationID:      a.ApplicationID,
		ApprovedAmount:     a.ApprovedAmount,
		TotalRepaid:        total,
		OutstandingBalance: decimal.Zero,
	}
	if a.ApprovedAmount.Valid {
		out.OutstandingBalance = a.ApprovedAmount.Decimal.Sub(total)
	}
	return out, nil
}

func (u *Usecase) OutstandingBalance(ctx context.Context, applicationID string) (decimal.Decimal, error) {
	b, err := u.Balance(ctx, applicationID)
	if err != nil {
		return decimal.Zero, err
	}
	return b.OutstandingBalance, nil
}

// UpdateStatus settles a pending posting; no other change is allowed.
func (u *Usecase) UpdateStatus(ctx context.Context, repaymentID string, to domain.PaymentStatus) (*RepaymentDTO, error) {
	if !to.Valid() {
		return nil, apperror.Validationf("unknown payment status %q", to)
	}
	var out *domain.Repayment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rp, err := r.Repayments.GetByRepaymentID(ctx, repaymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("repayment %s not found", repaymentID)
			}
			return err
		}
		if !rp.PaymentStatus.CanTransition(to) {
			return apperror.Validationf("payment status can only move from %s to %s; repayment is %s",
				domain.PaymentPending, domain.PaymentCompleted, rp.PaymentStatus)
		}
		rp.PaymentStatus = to
		rp.UpdatedAt = u.now()
		if err := r.Repayments.Save(ctx, rp); err != nil {
			return err
		}
		out = rp
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.WithField("repayment_id", repaymentID).Info("repayment settled")
	return toDTO(out), nil
}

// ReconcileClosures closes disbursed loans whose ledger already reaches the approved amount.
// It returns how many loans it closed.
func (u *Usecase) ReconcileClosures(ctx context.Context) (int, error) {
	var candidates []string
	for offset := 0; ; offset += reconcileBatch {
		rows, err := u.apps.ListByStatus(ctx, application.StatusDisbursed, offset, reconcileBatch)
		if err != nil {
			return 0, err
		}
		for _, a := range rows {
			candidates = append(candidates, a.ApplicationID)
		}
		if len(rows) < reconcileBatch {
			break
		}
	}

	closedCount := 0
	for _, appID := range candidates {
		if err := ctx.Err(); err != nil {
			return closedCount, err
		}
		var (
			closed bool
			total  decimal.Decimal
		)
		err := u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *application.Application) error {
			if a.Status != application.StatusDisbursed || !a.ApprovedAmount.Valid {
				return nil
			}
			var err error
			total, err = r.Repayments.TotalByApplication(ctx, a.ApplicationID)
			if err != nil {
				return err
			}
			if total.LessThan(a.ApprovedAmount.Decimal) {
				return nil
			}
			if err := u.closer.CloseWithin(ctx, r, a); err != nil {
				return err
			}
			closed = true
			return nil
		})
		if err != nil {
			u.log.WithError(err).WithField("application_id", appID).Warn("reconcile closure")
			continue
		}
		if closed {
			closedCount++
			u.metrics.LoanClosed()
			u.log.WithField("application_id", appID).Info("loan closed by reconciliation")
			u.publish(ctx, closedEvent(appID, total, u.now()))
		}
	}
	u.metrics.ReconcileRun()
	return closedCount, nil
}

func (u *Usecase) publish(ctx context.Context, evs ...event.Event) {
	if err := u.pub.Publish(ctx, evs...); err != nil {
		u.log.WithError(err).Warn("publish ledger events")
	}
}
