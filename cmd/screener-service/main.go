package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-swing-screener/internal/screener/config"
	delivery "golang-swing-screener/internal/screener/delivery/http"
	"golang-swing-screener/internal/screener/pipeline"
	"golang-swing-screener/internal/screener/repository"
	"golang-swing-screener/internal/screener/service"
	"golang-swing-screener/pkg/logger"
	"golang-swing-screener/pkg/postgres"
	"golang-swing-screener/pkg/redis"
	"golang-swing-screener/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the screener service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Screener Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize Telegram notifier
	var telegramNotifier telegram.Notifier
	if cfg.Telegram.Enabled {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Resolve the screening policy
	policy, err := pipeline.PolicyForVersion(cfg.Policy.Version)
	if err != nil {
		appLogger.Fatal("Failed to resolve screening policy", logger.ErrorField(err))
	}
	appLogger.Info("Screening policy resolved", logger.StringField("version", policy.Version))

	// Initialize repositories
	sheetRepo, err := repository.NewSheetRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize sheet repository", logger.ErrorField(err))
	}
	signalRepo := repository.NewScreenerSignalRepository(db.DB)

	// Initialize services
	screenerSvc := service.NewScreenerService(cfg, appLogger, sheetRepo, signalRepo, redisClient, telegramNotifier, pipeline.New(policy))
	schedulerSvc := service.NewSchedulerService(cfg, appLogger, screenerSvc)

	go schedulerSvc.Start(ctx)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", swagger.WrapHandler)

	handler := delivery.NewScreenerHandler(screenerSvc, signalRepo, appLogger)
	handler.RegisterRoutes(e.Group("/api/v1"))

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start API server", logger.ErrorField(err))
		}
	}()

	appLogger.Info("Screener service started")

	<-ctx.Done()

	appLogger.Info("Shutting down screener service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to shut down API server", logger.ErrorField(err))
	}
	appLogger.Info("Screener service stopped.")
}

// @title Swing Screener API
// @version 1.0
// @description Ranked swing, positional and near-miss tables computed from a daily stock metrics sheet.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "screener-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-screener.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing screener-service CLI: %s\n", err)
		os.Exit(1)
	}
}
