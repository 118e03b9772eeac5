package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/patrickmn/go-cache"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradebridge/internal/client/binance"
	"tradebridge/internal/config"
	cronrunner "tradebridge/internal/cron"
	"tradebridge/internal/db"
	"tradebridge/internal/handler"
	"tradebridge/internal/logger"
	"tradebridge/internal/metrics"
	"tradebridge/internal/models"
	gormrepository "tradebridge/internal/repository/gorm"
	"tradebridge/internal/service"

	_ "tradebridge/docs"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("TB_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TB_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	venueHTTP := &http.Client{Timeout: cfg.Binance.Timeout}
	venueClient := binance.NewClient(venueHTTP, cfg.Binance.BaseURL,
		cfg.Binance.APIKey, cfg.Binance.APISecret, cfg.Binance.RecvWindow)
	ledger := gormrepository.New(dbConn.Gorm)
	serviceMetrics := metrics.New()

	processor := &service.SignalProcessor{
		Gateway: venueClient,
		Ledger:  ledger,
		Logger:  logger,
		Metrics: serviceMetrics,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.LoadHTMLGlob(cfg.Server.TemplateGlob)

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	webhookHandler := &handler.WebhookHandler{Processor: processor, Logger: logger}
	webhookHandler.Register(engine)
	dashboardHandler := &handler.DashboardHandler{
		Ledger: ledger,
		Cache:  cache.New(cfg.Dashboard.CacheTTL, 2*cfg.Dashboard.CacheTTL),
		Logger: logger,
	}
	dashboardHandler.Register(engine)
	tradeHandler := &handler.TradeHandler{Ledger: ledger}
	tradeHandler.Register(engine)

	engine.GET("/metrics", gin.WrapH(serviceMetrics.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err = cronRunner.Add(cfg.Cron.LedgerStats, func(ctx context.Context) {
			since := time.Now().UTC().Add(-time.Hour)
			ok, err := ledger.CountTradesSince(ctx, models.StatusSuccess, since)
			if err != nil {
				logger.Warn("ledger stats failed", zap.Error(err))
				return
			}
			failed, err := ledger.CountTradesSince(ctx, models.StatusError, since)
			if err != nil {
				logger.Warn("ledger stats failed", zap.Error(err))
				return
			}
			logger.Info("ledger hourly stats",
				zap.Int64("success", ok),
				zap.Int64("error", failed),
			)
		})
		if err != nil {
			logger.Warn("cron register ledger stats failed", zap.Error(err))
		}
		_, err = cronRunner.Add(cfg.Cron.WALCheckpoint, func(ctx context.Context) {
			if err := db.Checkpoint(dbConn); err != nil {
				logger.Warn("wal checkpoint failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register wal checkpoint failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
