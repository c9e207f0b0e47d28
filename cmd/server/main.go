package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"waitlist.backend/internal/config"
	"waitlist.backend/internal/infrastructure/datasources/postgres"
	"waitlist.backend/internal/infrastructure/facilitator"
	"waitlist.backend/internal/infrastructure/models"
	"waitlist.backend/internal/infrastructure/repositories"
	"waitlist.backend/internal/interfaces/http/handlers"
	"waitlist.backend/internal/interfaces/http/middleware"
	"waitlist.backend/internal/usecases"
	"waitlist.backend/pkg/logger"
	"waitlist.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = postgres.Shared
	migrate    = models.AutoMigrate
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	runServer  = func(ctx context.Context, srv *http.Server) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis only backs the membership cache and webhook idempotency, both optional
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Warn(ctx, "Redis unavailable, continuing without cache", zap.Error(err))
		redis.SetClient(nil)
	} else {
		logger.Info(ctx, "Redis initialized")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info(ctx, "Connected to PostgreSQL via GORM")

	if cfg.Payment.ServerWalletAddress == "" {
		logger.Warn(ctx, "SERVER_WALLET_ADDRESS is not set, new payments will be refused")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Settlement
	facilitatorClient, err := facilitator.NewClient(cfg.Facilitator)
	if err != nil {
		return fmt.Errorf("failed to configure facilitator: %w", err)
	}
	settler := facilitator.NewSettler(facilitatorClient, cfg.Payment)
	membershipCache := redis.NewMembershipCache(cfg.Redis.MembershipTTL)

	// Usecases
	accessUsecase := usecases.NewAccessUsecase(userRepo, paymentRepo, settler, membershipCache, cfg.Payment)
	waitlistUsecase := usecases.NewWaitlistUsecase(userRepo, membershipCache)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo)

	r := newRouter(cfg, routeDeps{
		accessHandler:     handlers.NewAccessHandler(accessUsecase, cfg.Server.PublicBaseURL),
		waitlistHandler:   handlers.NewWaitlistHandler(waitlistUsecase),
		paymentHandler:    handlers.NewPaymentHandler(paymentUsecase),
		healthHandler:     handlers.NewHealthHandler(sqlDB),
		webhookMiddleware: middleware.WebhookSecretMiddleware(cfg.Webhook.SecretHash),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info(ctx, "Waitlist backend starting", zap.String("port", cfg.Server.Port))
	if err := runServer(sigCtx, srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}
