package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greensweep/backend/internal/application"
	"github.com/greensweep/backend/internal/auth"
	"github.com/greensweep/backend/internal/common/database"
	"github.com/greensweep/backend/internal/common/logger"
	"github.com/greensweep/backend/internal/common/utils"
	"github.com/greensweep/backend/internal/config"
	"github.com/greensweep/backend/internal/dashboard"
	"github.com/greensweep/backend/internal/matching"
	"github.com/greensweep/backend/internal/notification"
	"github.com/greensweep/backend/internal/opportunity"
	"github.com/greensweep/backend/internal/volunteer"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		panic("invalid configuration: " + err.Error())
	}

	zapLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting greensweep api", map[string]interface{}{
		"environment": cfg.Environment,
		"port":        cfg.Port,
	})

	// Database
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Error("failed to connect to postgres", nil)
		os.Exit(1)
	}
	defer db.Close()

	if err := runMigrations(db); err != nil {
		log.WithError(err).Error("failed to run migrations", nil)
		os.Exit(1)
	}

	// Redis is optional; without it the matching cache is simply disabled
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, match cache disabled", nil)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Repositories
	authRepo := auth.NewPostgresRepository(db)
	volunteerRepo := volunteer.NewPostgresRepository(db)
	opportunityRepo := opportunity.NewPostgresRepository(db)
	applicationRepo := application.NewPostgresRepository(db)
	notificationRepo := notification.NewPostgresRepository(db)
	dashboardRepo := dashboard.NewPostgresRepository(db)

	// Photo uploads
	var uploadService opportunity.UploadService
	if cfg.UseS3 {
		uploadService, err = opportunity.NewS3UploadService(cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			log.WithError(err).Error("failed to initialize S3 uploads", nil)
			os.Exit(1)
		}
	} else {
		uploadService = opportunity.NewLocalUploadService(cfg.LocalUploadDir, cfg.BaseURL)
	}

	// Notifications
	hub := notification.NewHub(log)
	go hub.Run()

	var emailSender notification.EmailSender
	if cfg.EmailProvider == "sendgrid" && cfg.SendGridAPIKey != "" {
		emailSender, err = notification.NewSendGridSender(cfg.SendGridAPIKey, cfg.EmailFrom, "GreenSweep", log)
		if err != nil {
			log.WithError(err).Warn("sendgrid unavailable, falling back to mock email", nil)
			emailSender = notification.NewMockSender()
		}
	} else {
		emailSender = notification.NewMockSender()
	}

	notificationService := notification.NewService(notificationRepo, hub, emailSender, notification.Config{
		EmailEnabled: cfg.EnableEmailNotifications,
		LiveEnabled:  cfg.EnableLiveNotifications,
	}, log)

	// Services
	authService := auth.NewService(authRepo, &auth.Config{
		JWTSecret:          cfg.JWTSecret,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
		BCryptCost:         cfg.BCryptCost,
	})
	volunteerService := volunteer.NewService(volunteerRepo, log)
	opportunityService := opportunity.NewService(opportunityRepo, uploadService, log)
	applicationService := application.NewService(applicationRepo, opportunityService, notificationService, log)
	dashboardService := dashboard.NewService(dashboardRepo)

	matchingService := matching.NewService(volunteerRepo, opportunityRepo, applicationRepo, matching.Config{
		ScoreThreshold:   cfg.MatchScoreThreshold,
		OpportunityLimit: cfg.OpportunityMatchLimit,
		VolunteerLimit:   cfg.VolunteerMatchLimit,
	}, log)
	if cfg.EnableMatchCache && redisClient != nil {
		matchingService = matching.NewCachedService(matchingService, redisClient, cfg.MatchCacheTTL, log)
	}

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	opportunity.NewScheduler(opportunityService, log).Start(ctx)

	// HTTP surface
	authMiddleware := auth.NewMiddleware(authService)
	router := mux.NewRouter()

	auth.RegisterRoutes(router, auth.NewHandler(authService), authMiddleware)
	volunteer.RegisterRoutes(router, volunteer.NewHandler(volunteerService), authMiddleware)
	opportunity.RegisterRoutes(router, opportunity.NewHandler(opportunityService), authMiddleware)
	application.RegisterRoutes(router, application.NewHandler(applicationService), authMiddleware)
	notification.RegisterRoutes(router, notification.NewHandler(notificationService, hub), authMiddleware)
	matching.RegisterRoutes(router, matching.NewHandler(matchingService), authMiddleware)
	dashboard.RegisterRoutes(router, dashboard.NewHandler(dashboardService), authMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		utils.RespondWithMessage(w, http.StatusOK, "ok")
	}).Methods("GET")

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("http server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("http server failed", nil)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down", nil)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed", nil)
	}
}
