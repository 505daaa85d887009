package app

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"lending-core/internal/adapter/events"
	"lending-core/internal/adapter/repository/mysql"
	"lending-core/internal/config"
	"lending-core/internal/domain/customer"
	"lending-core/internal/domain/event"
	"lending-core/internal/infrastructure/cache"
	"lending-core/internal/infrastructure/db"
	"lending-core/internal/infrastructure/metrics"
	"lending-core/internal/usecase/application"
	"lending-core/internal/usecase/product"
	"lending-core/internal/usecase/repayment"
)

// App holds the wired usecases shared by the API and the scheduler.
type App struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Metrics *metrics.Metrics
	Log     logrus.FieldLogger

	Products     *product.Usecase
	Applications *application.Usecase
	Repayments   *repayment.Usecase

	closers []func() error
}

// Build connects to MySQL and Redis and wires every usecase. Redis is optional
// for the scheduler, so withRedis=false skips it and the customer cache.
func Build(cfg *config.Config, log *logrus.Logger, withRedis bool) (*App, error) {
	dbOpts := db.DefaultOptions()
	dbOpts.Log = log
	gdb, err := db.OpenGorm(cfg.MySQLDSN(), dbOpts)
	if err != nil {
		return nil, err
	}
	a := &App{DB: gdb, Metrics: metrics.New(), Log: log}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, sqlDB.Close)

	if cfg.MigrateOnStart {
		if err := db.Migrate(sqlDB); err != nil {
			_ = a.Close()
			return nil, err
		}
		log.Info("migrations applied")
	}

	var directory customer.Directory = mysql.NewCustomerDirectory(gdb)
	if withRedis {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Redis = rdb
		a.closers = append(a.closers, rdb.Close)
		directory = cache.NewCachedDirectory(directory, rdb, cfg.CustomerCacheTTL(), log)
	}

	var pub event.Publisher = events.NewLogPublisher(log)
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		a.closers = append(a.closers, kp.Close)
		pub = kp
	}

	tx := mysql.NewGormUoW(gdb)
	apps := mysql.NewApplicationRepository(gdb)

	a.Products = product.NewUsecase(mysql.NewProductRepository(gdb), tx, product.WithLogger(log))
	a.Applications = application.NewUsecase(apps, directory, tx,
		application.WithLogger(log),
		application.WithPublisher(pub),
		application.WithMetrics(a.Metrics),
	)
	a.Repayments = repayment.NewUsecase(mysql.NewRepaymentRepository(gdb), apps, tx, a.Applications,
		repayment.WithLogger(log),
		repayment.WithPublisher(pub),
		repayment.WithMetrics(a.Metrics),
	)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close app: %w", err)
	}
	return nil
}
