package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"rentora/internal/config"
	"rentora/internal/database"
	"rentora/internal/modules/billing"
	"rentora/internal/repository"
)

// One-shot overdue sweep, for external schedulers (cron, k8s CronJob).
// The API server also runs the sweep in-process; both may run concurrently.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	invoices := repository.NewInvoiceRepository(db)
	leases := repository.NewLeaseRepository(db)
	service := billing.NewService(invoices, leases, nil)

	n, err := service.SweepOverdue(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("sweep failed")
	}
	logrus.WithField("marked_overdue", n).Info("sweep complete")
}
