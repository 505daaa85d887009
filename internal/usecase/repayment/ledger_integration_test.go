package repayment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lending-core/internal/adapter/repository/mysql"
	"lending-core/internal/domain/application"
	"lending-core/internal/domain/event"
	domain "lending-core/internal/domain/repayment"
	"lending-core/internal/testutil/customermock"
	appuc "lending-core/internal/usecase/application"
	"lending-core/pkg/id"
)

type syncPublisher struct {
	mu     sync.Mutex
	closed int
}

func (p *syncPublisher) Publish(_ context.Context, evs ...event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range evs {
		if e.Type == event.TypeApplicationClosed {
			p.closed++
		}
	}
	return nil
}

func openLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&application.Application{}, &domain.Repayment{}))
	return db
}

func seedDisbursed(t *testing.T, db *gorm.DB, approved int64) string {
	t.Helper()
	a := &application.Application{
		ApplicationID:   id.NewID32(),
		CustomerID:      "cust-1",
		ProductID:       id.NewID32(),
		RequestedAmount: decimal.NewFromInt(approved),
		ApprovedAmount:  decimal.NewNullDecimal(decimal.NewFromInt(approved)),
		Status:          application.StatusDisbursed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, mysql.NewApplicationRepository(db).Create(context.Background(), a))
	return a.ApplicationID
}

func newStoredLedger(db *gorm.DB, pub event.Publisher) *Usecase {
	apps := mysql.NewApplicationRepository(db)
	tx := mysql.NewGormUoW(db)
	clock := func() time.Time { return now }
	workflow := appuc.NewUsecase(apps, customermock.Known(), tx, appuc.WithClock(clock))
	return NewUsecase(mysql.NewRepaymentRepository(db), apps, tx, workflow,
		WithClock(clock),
		WithPublisher(pub),
	)
}

func TestLedger_ConcurrentRepaymentsNeverOverpay(t *testing.T) {
	db := openLedgerDB(t)
	ctx := context.Background()
	appID := seedDisbursed(t, db, 1_000_000)
	pub := &syncPublisher{}
	uc := newStoredLedger(db, pub)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Record(ctx, RecordRepaymentInput{
				ApplicationID: appID,
				AmountPaid:    decimal.NewFromInt(250_000),
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, ok)
	b, err := uc.Balance(ctx, appID)
	require.NoError(t, err)
	assert.True(t, b.TotalRepaid.Equal(decimal.NewFromInt(1_000_000)), "total = %s", b.TotalRepaid)
	assert.True(t, b.OutstandingBalance.IsZero())

	a, err := mysql.NewApplicationRepository(db).GetByApplicationID(ctx, appID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusClosed, a.Status)
	assert.Equal(t, 1, pub.closed)
}

func TestLedger_ReconcileClosesFundedLoans(t *testing.T) {
	db := openLedgerDB(t)
	ctx := context.Background()
	funded := seedDisbursed(t, db, 500)
	open := seedDisbursed(t, db, 500)

	repayments := mysql.NewRepaymentRepository(db)
	for _, p := range []struct {
		app string
		amt int64
	}{{funded, 500}, {open, 200}} {
		require.NoError(t, repayments.Create(ctx, &domain.Repayment{
			RepaymentID:   id.NewID32(),
			ApplicationID: p.app,
			AmountPaid:    decimal.NewFromInt(p.amt),
			PaymentStatus: domain.PaymentCompleted,
			PaymentDate:   now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}))
	}

	pub := &syncPublisher{}
	n, err := newStoredLedger(db, pub).ReconcileClosures(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, pub.closed)

	apps := mysql.NewApplicationRepository(db)
	got, err := apps.GetByApplicationID(ctx, funded)
	require.NoError(t, err)
	assert.Equal(t, application.StatusClosed, got.Status)
	got, err = apps.GetByApplicationID(ctx, open)
	require.NoError(t, err)
	assert.Equal(t, application.StatusDisbursed, got.Status)
}
