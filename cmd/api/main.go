package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"rentora/internal/config"
	"rentora/internal/database"
	"rentora/internal/middleware"
	"rentora/internal/modules/auth"
	"rentora/internal/modules/billing"
	"rentora/internal/modules/catalog"
	"rentora/internal/modules/chat"
	"rentora/internal/modules/leasing"
	"rentora/internal/modules/maintenance"
	"rentora/internal/modules/notification"
	jwtsvc "rentora/internal/pkg/jwt"
	"rentora/internal/realtime"
	"rentora/internal/repository"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

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

	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	leaseRepo := repository.NewLeaseRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)

	// Realtime
	hub := realtime.NewHub()
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		logrus.WithField("addr", cfg.RedisAddr).Info("realtime bridge enabled")
	}
	broker := realtime.NewBroker(hub, redisClient)
	go broker.Run(context.Background())

	// Services
	notificationService := notification.NewService(notificationRepo, broker)
	authService := auth.NewService(userRepo, jwtService)
	catalogService := catalog.NewService(propertyRepo, roomRepo)
	leasingService := leasing.NewService(leaseRepo, reservationRepo, roomRepo, notificationService)
	billingService := billing.NewService(invoiceRepo, leaseRepo, notificationService)
	chatService := chat.NewService(chatRepo, userRepo, broker, notificationService)
	maintenanceService := maintenance.NewService(maintenanceRepo, leaseRepo, notificationService)

	sweeper := billing.NewSweeper(billingService)
	if err := sweeper.Start(cfg.SweepSchedule); err != nil {
		logrus.WithError(err).Fatal("failed to start overdue sweeper")
	}
	defer sweeper.Stop()

	// Handlers
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	leasingHandler := leasing.NewHandler(leasingService)
	billingHandler := billing.NewHandler(billingService)
	chatHandler := chat.NewHandler(chatService, hub, jwtService)
	maintenanceHandler := maintenance.NewHandler(maintenanceService)
	notificationHandler := notification.NewHandler(notificationService)

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger())

	api := router.Group("/api/v1")

	public := api.Group("")
	authHandler.RegisterRoutes(public)
	catalogHandler.RegisterRoutes(public)
	chatHandler.RegisterWS(public)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwtService))
	authHandler.RegisterProtectedRoutes(protected)
	leasingHandler.RegisterRoutes(protected)
	billingHandler.RegisterRoutes(protected)
	chatHandler.RegisterRoutes(protected)
	maintenanceHandler.RegisterRoutes(protected)
	notificationHandler.RegisterRoutes(protected)

	admin := api.Group("/admin")
	admin.Use(middleware.Auth(jwtService), middleware.AdminOnly())
	catalogHandler.RegisterAdminRoutes(admin)
	leasingHandler.RegisterAdminRoutes(admin)
	billingHandler.RegisterAdminRoutes(admin)
	maintenanceHandler.RegisterAdminRoutes(admin)

	logrus.WithField("port", cfg.Port).Info("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
