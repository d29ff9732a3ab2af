package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/config"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/handler"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/middleware"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Create services
	settingsSvc := service.NewSettingsService(repo)
	pointsSvc := service.NewPointsService(repo)
	referralSvc := service.NewReferralService(repo, settingsSvc, pointsSvc)
	userSvc := service.NewUserService(repo, referralSvc)
	playlistSvc := service.NewPlaylistService(repo)
	notificationSvc := service.NewNotificationService(repo)
	watchSvc := service.NewWatchService(repo, settingsSvc, pointsSvc, playlistSvc, notificationSvc)
	youtubeClient := service.NewYouTubeClient(cfg.YouTube.APIKey)
	videoSvc := service.NewVideoService(repo, settingsSvc, pointsSvc, youtubeClient)
	purchaseCodeSvc := service.NewPurchaseCodeService(repo, pointsSvc)
	adminSvc := service.NewAdminService(repo, settingsSvc, cfg.Server.JWTSecret)

	// Create handlers
	h := handler.New(cfg, userSvc, videoSvc, playlistSvc, watchSvc, pointsSvc, referralSvc, purchaseCodeSvc, notificationSvc, settingsSvc, adminSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, settingsSvc, videoSvc, purchaseCodeSvc, pointsSvc, userSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-Id",
	}))

	// Health check
	app.Get("/health", h.Health)

	// Public API: identity bootstrap and admin login
	app.Get("/api/user/me", h.GetMe)
	app.Post("/api/admin/login", adminHandler.Login)

	// Admin panel routes (requires admin token). Registered before the user
	// API group so UserAuth never runs for /api/admin paths.
	admin := app.Group("/api/admin", middleware.AdminAuth(adminSvc))
	admin.Get("/stats", adminHandler.GetStats)

	// Admin - Settings
	admin.Get("/settings", adminHandler.GetSettings)
	admin.Put("/settings", adminHandler.UpdateSettings)

	// Admin - Payment options
	admin.Post("/payment-options", adminHandler.AddPaymentOption)
	admin.Put("/payment-options/:option_id", adminHandler.UpdatePaymentOption)
	admin.Delete("/payment-options/:option_id", adminHandler.DeletePaymentOption)

	// Admin - Referral tiers
	admin.Get("/referral-tiers", adminHandler.ListReferralTiers)
	admin.Post("/referral-tiers", adminHandler.CreateReferralTier)
	admin.Put("/referral-tiers/:tier_id", adminHandler.UpdateReferralTier)
	admin.Delete("/referral-tiers/:tier_id", adminHandler.DeleteReferralTier)

	// Admin - Videos
	admin.Put("/videos/:video_id", adminHandler.UpdateVideo)
	admin.Delete("/videos/:video_id", adminHandler.DeleteVideo)

	// Admin - Purchase codes
	admin.Get("/codes", adminHandler.ListPurchaseCodes)
	admin.Post("/codes", adminHandler.GeneratePurchaseCode)
	admin.Delete("/codes/:code", adminHandler.DeletePurchaseCode)

	// Admin - User management
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users/:user_id/points", adminHandler.AddPointsToUser)

	// API routes that need an established user identity
	api := app.Group("/api", middleware.UserAuth())

	// User
	api.Put("/user/name", h.UpdateDisplayName)
	api.Get("/user/transactions", h.GetTransactions)

	// Player
	api.Get("/player/current", h.GetCurrentVideo)
	api.Get("/player/queue", h.GetQueue)
	api.Post("/player/advance", h.AdvanceToNext)
	api.Post("/player/play", h.ReportPlayStarted)
	api.Post("/player/stop", h.ReportPlayStopped)
	api.Get("/player/progress", h.GetWatchProgress)

	// Videos
	api.Get("/videos", h.ListVideos)
	api.Post("/videos", h.SubmitVideo)

	// Referrals
	api.Get("/referral/info", h.GetReferralInfo)

	// Points shop
	api.Get("/payment/options", h.GetPaymentOptions)
	api.Post("/payment/simulate", h.SimulatePurchase)
	api.Post("/codes/redeem", h.RedeemCode)

	// Notifications
	api.Get("/notifications", h.ListNotifications)
	api.Post("/notifications/read", h.MarkNotificationsRead)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go watchSvc.StartJanitor(ctx)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		cancel()
		watchSvc.Shutdown()
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
