package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "lending-core/internal/adapter/http"
	mw "lending-core/internal/adapter/middleware"
	"lending-core/internal/app"
	"lending-core/internal/config"
	"lending-core/internal/infrastructure/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("build logger")
	}

	a, err := app.Build(cfg, log, true)
	if err != nil {
		log.WithError(err).Fatal("wire application")
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover(), mw.Metrics(a.Metrics))

	idemOpts := []mw.IdempotencyOption{mw.WithIdempotencyLogger(log)}
	if cfg.IdempotencyRequired {
		idemOpts = append(idemOpts, mw.RequireKey())
	}
	idem := mw.NewIdempotency(a.Redis, cfg.IdempotencyTTL(), idemOpts...)

	httpadp.Register(e, httpadp.Routes{
		Health:       httpadp.NewHandler(),
		Products:     httpadp.NewProductHandler(a.Products, log),
		Applications: httpadp.NewApplicationHandler(a.Applications, log),
		Repayments:   httpadp.NewRepaymentHandler(a.Repayments, log),
		Metrics:      a.Metrics.Handler(),
	}, idem.Middleware())

	go func() {
		addr := ":" + cfg.AppPort
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("graceful shutdown")
	}
}
