package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"lending-core/internal/app"
	"lending-core/internal/config"
	"lending-core/internal/infrastructure/logging"
)

const reconcileTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("build logger")
	}

	a, err := app.Build(cfg, log, false)
	if err != nil {
		log.WithError(err).Fatal("wire application")
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	c := cron.New(
		cron.WithParser(cron.NewParser(config.CronSpec)),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	_, err = c.AddFunc(cfg.ReconcileSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		n, err := a.Repayments.ReconcileClosures(ctx)
		if err != nil {
			log.WithError(err).Warn("reconcile closures")
			return
		}
		log.WithField("closed", n).Info("reconcile closures finished")
	})
	if err != nil {
		log.WithError(err).Fatal("schedule reconcile job")
	}

	c.Start()
	log.WithField("schedule", cfg.ReconcileSchedule).Info("scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down scheduler")
	<-c.Stop().Done()
}
