package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"user-hub.backend/internal/config"
	"user-hub.backend/internal/infrastructure/messaging"
	"user-hub.backend/internal/infrastructure/repositories"
	"user-hub.backend/internal/interfaces/http/handlers"
	"user-hub.backend/internal/interfaces/http/middleware"
	"user-hub.backend/internal/usecases"
	"user-hub.backend/pkg/logger"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			TranslateError: true,
		})
	}
	newPublisher = func(ctx context.Context, cfg config.PubSubConfig) (messaging.Publisher, error) {
		return messaging.NewPubSubPublisher(ctx, cfg.ProjectID, cfg.CredentialsFile)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env, cfg.Log.Level, cfg.Log.Dir)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, requests will be gated", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The notification channel degrades instead of crashing: a failed
	// construction leaves a publisher that errors on first use.
	var publisher messaging.Publisher
	publisher, err = newPublisher(ctx, cfg.PubSub)
	if err != nil {
		logger.Error(ctx, "Failed to construct notification publisher, continuing degraded", zap.Error(err))
		publisher = &messaging.DisabledPublisher{Reason: err}
	}
	defer publisher.Close()

	userRepo := repositories.NewUserRepository(db)
	verifRepo := repositories.NewVerificationRepository(db)

	verificationUsecase := usecases.NewVerificationUsecase(verifRepo, userRepo, publisher, cfg.App.DomainName)
	accountUsecase := usecases.NewAccountUsecase(userRepo, verificationUsecase)

	healthHandler := handlers.NewHealthHandler()
	userHandler := handlers.NewUserHandler(accountUsecase)
	verifyHandler := handlers.NewVerifyHandler(verificationUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.DBCheckMiddleware(db))

	applyCORSMiddleware(r)
	registerRoutes(r, routeDeps{
		healthHandler: healthHandler,
		userHandler:   userHandler,
		verifyHandler: verifyHandler,
		basicAuth:     middleware.BasicAuthMiddleware(accountUsecase),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		cancel()
	}()

	logger.Info(ctx, "Server starting", zap.String("port", cfg.Server.Port))
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
