package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/activity-tracker-api/internal/auth"
	"github.com/yukikurage/activity-tracker-api/internal/config"
	"github.com/yukikurage/activity-tracker-api/internal/database"
	"github.com/yukikurage/activity-tracker-api/internal/logger"
	"github.com/yukikurage/activity-tracker-api/internal/mail"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
	"github.com/yukikurage/activity-tracker-api/internal/scheduler"
	"github.com/yukikurage/activity-tracker-api/internal/services"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.AppEnv)
	slog.SetDefault(log)

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	db := database.GetDB()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("failed to connect to Redis, rate limiting disabled", "error", err)
		redisClient.Close()
		redisClient = nil
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	eventRepo := repository.NewEventRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	tokenRepo := repository.NewPasswordResetTokenRepository(db)

	// Services
	var mailer mail.Mailer = mail.NewLogMailer(log)
	if cfg.MailEnabled() {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry())
	activityService := services.NewActivityService(activityRepo, userRepo)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)
	interactionService := services.NewInteractionService(interactionRepo)

	deps := routerDeps{
		cfg:                cfg,
		logger:             log,
		redis:              redisClient,
		sessionStore:       newSessionStore(cfg, redisClient != nil, log),
		jwtService:         jwtService,
		userRepo:           userRepo,
		authService:        services.NewAuthService(userRepo, jwtService),
		resetService:       services.NewPasswordResetService(userRepo, tokenRepo, mailer, cfg.FrontendURL, cfg.ResetTokenExpiry()),
		activityService:    activityService,
		userService:        userService,
		eventService:       eventService,
		interactionService: interactionService,
		analyticsService:   services.NewAnalyticsService(interactionService, eventService, userService, activityService),
		aiService:          services.NewAIService(cfg.OpenAIAPIKey),
		overdueJob:         scheduler.NewOverdueJob(activityRepo, log),
	}

	// Scheduler
	sched := scheduler.New(log, time.Local)
	if err := sched.Register("overdue-activities", cfg.OverdueCron, func(ctx context.Context) {
		deps.overdueJob.Run(ctx)
	}); err != nil {
		log.Error("failed to register overdue job", "error", err)
		os.Exit(1)
	}
	if err := sched.Register("purge-reset-tokens", cfg.PurgeCron, func(ctx context.Context) {
		n, err := deps.resetService.PurgeExpired(ctx)
		if err != nil {
			log.Error("failed to purge expired reset tokens", "error", err)
			return
		}
		log.Info("purged expired reset tokens", "count", n)
	}); err != nil {
		log.Error("failed to register token purge job", "error", err)
		os.Exit(1)
	}
	sched.Start()
	if next, ok := sched.Next("overdue-activities"); ok {
		log.Info("next overdue run", "at", next.Format(time.RFC3339))
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      setupRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", server.Addr, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
	}
	if err := sched.Stop(ctx); err != nil {
		log.Error("scheduler shutdown error", "error", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("server stopped")
}

// newSessionStore keeps sessions in Redis when it is reachable and in
// signed cookies otherwise.
func newSessionStore(cfg *config.Config, useRedis bool, log *slog.Logger) sessions.Store {
	var store sessions.Store
	if useRedis {
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			cfg.RedisAddr(),
			"", // username (empty for default user)
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			log.Warn("failed to create Redis session store, using cookies", "error", err)
		} else {
			store = rs
		}
	}
	if store == nil {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store
}
