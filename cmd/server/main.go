package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vendor-onboarding.backend/internal/config"
	"vendor-onboarding.backend/internal/infrastructure/datasources/postgres"
	"vendor-onboarding.backend/internal/infrastructure/jobs"
	"vendor-onboarding.backend/internal/infrastructure/repositories"
	"vendor-onboarding.backend/internal/infrastructure/sheets"
	"vendor-onboarding.backend/internal/interfaces/http/handlers"
	"vendor-onboarding.backend/internal/interfaces/http/middleware"
	"vendor-onboarding.backend/internal/usecases"
	"vendor-onboarding.backend/pkg/logger"
	"vendor-onboarding.backend/pkg/metrics"
	"vendor-onboarding.backend/pkg/redis"
)

const (
	serviceName    = "vendor-onboarding-backend"
	serviceVersion = "0.1.0"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		sqlDB, err := postgres.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.OpenGorm(sqlDB)
	}
	applySchema     = postgres.ApplySchema
	newSessionStore = redis.NewWizardSessionStore
	runServer       = func(srv *http.Server) error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
)

const shutdownTimeout = 10 * time.Second

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
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	logger.Info(ctx, "Connected to PostgreSQL via GORM")

	if cfg.Database.ApplySchema {
		if err := applySchema(ctx, db); err != nil {
			return err
		}
		logger.Info(ctx, "Database schema applied")
	}

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey, cfg.Wizard.SessionTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Repositories
	vendorStatusRepo := repositories.NewVendorStatusRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	equipmentRepo := repositories.NewEquipmentRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	bannerRepo := repositories.NewBannerRepository(db)
	uow := repositories.NewUnitOfWork(db)
	sheetClient := sheets.NewClient(cfg.Sheets)

	// Usecases
	lookupUsecase := usecases.NewVendorLookupUsecase(vendorStatusRepo, merchantRepo)
	reconciler := usecases.NewSubmissionReconciler(uow, merchantRepo, equipmentRepo, menuRepo, bannerRepo, vendorStatusRepo)
	onboardingUsecase := usecases.NewOnboardingUsecase(uow, lookupUsecase, reconciler)
	prefillUsecase := usecases.NewPrefillUsecase(merchantRepo, equipmentRepo, menuRepo, bannerRepo, sheetClient)
	wizardUsecase := usecases.NewWizardUsecase(sessionStore, lookupUsecase, sheetClient, prefillUsecase, onboardingUsecase, cfg.Wizard.SubmitLockTTL)

	// Background jobs
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var refreshJob *jobs.ProspectSheetRefreshJob
	if sheetClient.Enabled() {
		refreshJob = jobs.NewProspectSheetRefreshJob(sheetClient, cfg.Sheets.RefreshInterval)
		go refreshJob.Start(jobCtx)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Security.AllowedOrigins))

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		vendorHandler:     handlers.NewVendorHandler(lookupUsecase),
		prefillHandler:    handlers.NewPrefillHandler(prefillUsecase),
		onboardingHandler: handlers.NewOnboardingHandler(onboardingUsecase),
		wizardHandler:     handlers.NewWizardHandler(wizardUsecase),
	})

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: r}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "Shutting down server")
		if refreshJob != nil {
			refreshJob.Stop()
		}
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "Server starting",
		zap.String("service", serviceName),
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)

	if err := runServer(srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	_ = redis.Close()
	logger.Sync()
	return nil
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
