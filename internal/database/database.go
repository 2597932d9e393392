package database

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the CGO-free "sqlite" driver

	"rentora/internal/domain"
)

// Connect opens PostgreSQL for postgres:// DSNs and SQLite otherwise.
// TranslateError lets callers match gorm.ErrDuplicatedKey on both drivers.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		logrus.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	logrus.WithField("dsn", dsn).Info("using SQLite")

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate creates the schema for every entity plus the postgres partial
// indexes backing the active-lease invariants. Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Property{},
		&domain.Room{},
		&domain.Reservation{},
		&domain.Lease{},
		&domain.Invoice{},
		&domain.Payment{},
		&domain.Vendor{},
		&domain.MaintenanceTicket{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.Notification{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(domain.IndexOneActiveLeasePerRoom).Error; err != nil {
			return err
		}
		if err := db.Exec(domain.IndexOneActiveLeasePerTenant).Error; err != nil {
			return err
		}
	}
	return nil
}
