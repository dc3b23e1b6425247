package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"uslugi/internal/ai"
	"uslugi/internal/config"
	"uslugi/internal/database"
	"uslugi/internal/middleware"
	"uslugi/internal/modules/admin"
	"uslugi/internal/modules/auth"
	"uslugi/internal/modules/booking"
	"uslugi/internal/modules/catalog"
	"uslugi/internal/modules/moderation"
	"uslugi/internal/modules/notification"
	"uslugi/internal/modules/post"
	"uslugi/internal/modules/review"
	"uslugi/internal/outbox"
	"uslugi/internal/pkg/cache"
	jwtsvc "uslugi/internal/pkg/jwt"
	"uslugi/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migrate failed", zap.Error(err))
	}

	redisCache := cache.New(cfg.RedisAddr)
	defer redisCache.Close()

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cityRepo := repository.NewCityRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	modlogRepo := repository.NewModerationLogRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, time.Duration(cfg.JWTExpireHrs)*time.Hour)
	aiClient := ai.New(cfg.AIBaseURL, cfg.AIAPIKey)

	hub := notification.NewHub()
	defer hub.Close()
	notifService := notification.NewService(activityRepo, hub, logger)
	notifHandler := notification.NewHandler(notifService, hub, j, logger)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	moderationService := moderation.NewService(aiClient, postRepo, modlogRepo)
	moderationHandler := moderation.NewHandler(moderationService)

	postService := post.NewService(
		postRepo,
		modlogRepo,
		outboxRepo,
		moderationService,
		categoryRepo,
		aiClient,
		cfg.PostLifetimeDays,
		logger,
	)
	postHandler := post.NewHandler(postService)

	bookingService := booking.NewService(bookingRepo, postRepo, notifService)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo, notifService)
	reviewHandler := review.NewHandler(reviewService)

	catalogService := catalog.NewService(categoryRepo, cityRepo, redisCache)
	catalogHandler := catalog.NewHandler(catalogService)

	adminService := admin.NewService(sectionRepo)
	adminHandler := admin.NewHandler(adminService)

	outboxHandler := outbox.NewHandler(outboxRepo)

	worker := outbox.NewWorker(outboxRepo, postRepo, aiClient, moderationService, logger)
	if err := worker.Start(); err != nil {
		logger.Fatal("outbox worker start failed", zap.Error(err))
	}
	defer worker.Stop()

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Metrics())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		adminHandler.RegisterPublicRoutes(v1)
		postHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)
		notifHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			postHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)

			// AI-backed endpoints get their own budget.
			aiRoutes := protected.Group("/")
			aiRoutes.Use(middleware.RateLimit(rate.Limit(1), 5))
			{
				postHandler.RegisterAIRoutes(aiRoutes)
				moderationHandler.RegisterRoutes(aiRoutes)
			}

			adminRoutes := protected.Group("/admin")
			adminRoutes.Use(middleware.RequireRole("admin"))
			{
				catalogHandler.RegisterAdminRoutes(adminRoutes)
				adminHandler.RegisterAdminRoutes(adminRoutes)
				moderationHandler.RegisterAdminRoutes(adminRoutes)
				outboxHandler.RegisterAdminRoutes(adminRoutes)
			}
		}
	}

	logger.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
