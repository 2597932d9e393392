package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"rentora/internal/config"
	"rentora/internal/database"
	"rentora/internal/domain"
	"rentora/internal/repository"
)

// Seeds an admin account, a demo property with a few rooms and one vendor.
// Safe to rerun: existing records are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	rooms := repository.NewRoomRepository(db)
	maint := repository.NewMaintenanceRepository(db)

	const adminEmail = "admin@rentora.local"
	exists, err := users.ExistsByEmail(ctx, adminEmail)
	if err != nil {
		logrus.WithError(err).Fatal("failed to check admin account")
	}
	if !exists {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
		if err != nil {
			logrus.WithError(err).Fatal("failed to hash password")
		}
		admin := &domain.User{
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			Name:         "Administrator",
		}
		if err := users.Create(ctx, admin); err != nil {
			logrus.WithError(err).Fatal("failed to create admin")
		}
		logrus.WithField("email", adminEmail).Info("admin account created")
	}

	var propCount int64
	if err := db.Model(&domain.Property{}).Count(&propCount).Error; err != nil {
		logrus.WithError(err).Fatal("failed to count properties")
	}
	if propCount == 0 {
		prop := &domain.Property{
			Name:    "Sunrise Residence",
			Address: "12 Garden Street",
			City:    "Almaty",
		}
		if err := properties.Create(ctx, prop); err != nil {
			logrus.WithError(err).Fatal("failed to create property")
		}

		demo := []domain.Room{
			{PropertyID: prop.ID, Number: "101", RoomType: domain.RoomSingle, MonthlyPrice: 90000},
			{PropertyID: prop.ID, Number: "102", RoomType: domain.RoomDouble, MonthlyPrice: 140000},
			{PropertyID: prop.ID, Number: "201", RoomType: domain.RoomStudio, MonthlyPrice: 180000},
		}
		for i := range demo {
			if err := rooms.Create(ctx, &demo[i]); err != nil {
				logrus.WithError(err).Fatal("failed to create room")
			}
		}
		logrus.WithField("rooms", len(demo)).Info("demo property created")

		vendor := &domain.Vendor{
			Name:      "FixIt Services",
			Phone:     "+7 700 000 0000",
			Specialty: "plumbing",
		}
		if err := maint.CreateVendor(ctx, vendor); err != nil {
			logrus.WithError(err).Fatal("failed to create vendor")
		}
	}

	logrus.Info("seed complete")
}
