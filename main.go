package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smk-kristen-pedan/order-tracker/config"
	"github.com/smk-kristen-pedan/order-tracker/controllers"
	"github.com/smk-kristen-pedan/order-tracker/documents"
	"github.com/smk-kristen-pedan/order-tracker/middleware"
	"github.com/smk-kristen-pedan/order-tracker/services"
	"github.com/smk-kristen-pedan/order-tracker/storage"
	"github.com/smk-kristen-pedan/order-tracker/store"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting Order Tracker API",
		zap.String("port", cfg.Port),
		zap.String("storage_driver", cfg.StorageDriver),
		zap.String("export_driver", cfg.ExportDriver))

	a, err := newApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	logger.Info("Server is running", zap.String("addr", "http://localhost:"+cfg.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		logger.Error("Server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("Server shutdown incomplete", zap.Error(err))
	}
	a.Close()

	logger.Info("Server stopped")
}

// app holds everything main wires together
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	kv     storage.Storage
	orders *store.Store
	router *gin.Engine
}

// newApp opens storage and the order store and builds the router
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	documents.SetLocation(loc)

	var s3Service services.S3Interface
	if cfg.UsesS3() {
		svc, err := services.NewS3Service(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s3Service = svc
	}

	kv, err := storage.FromConfig(cfg, s3Service)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageDriver, err)
	}

	orders, err := store.Open(ctx, kv, store.WithKey(cfg.StorageKey), store.WithLogger(logger))
	if err != nil {
		kv.Close()
		return nil, err
	}

	var sharer services.Sharer = services.NewLocalSharer(cfg.ExportDir)
	if cfg.ExportDriver == config.ExportS3 {
		sharer = services.NewS3Sharer(s3Service)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		kv:     kv,
		orders: orders,
		router: setupRouter(cfg, logger, kv, orders, services.NewExportService(sharer, logger)),
	}, nil
}

// Close flushes the order store and releases the storage backend
func (a *app) Close() {
	if err := a.orders.Close(); err != nil {
		a.logger.Warn("Failed to close order store", zap.Error(err))
	}
	if err := a.kv.Close(); err != nil {
		a.logger.Warn("Failed to close storage", zap.Error(err))
	}
}

// setupRouter mounts every endpoint under /api/v1
func setupRouter(cfg *config.Config, logger *zap.Logger, kv storage.Storage, orders *store.Store, exporter *services.ExportService) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsTest() {
		gin.SetMode(gin.TestMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), middleware.Recovery(logger), middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Storage status endpoint
		v1.GET("/storage/status", storageStatus(cfg, kv))

		controllers.NewOrderController(orders, logger).RegisterRoutes(v1)
		controllers.NewDocumentController(orders, exporter, logger).RegisterRoutes(v1)
		controllers.NewEventsController(orders, logger).RegisterRoutes(v1)

		// Locally shared exports
		v1.GET("/exports/:filename", controllers.ServeExport(cfg.ExportDir))
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order Tracker API is running",
	})
}

// storageStatus pings the configured storage backend
func storageStatus(cfg *config.Config, kv storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := kv.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STORAGE_CONNECTION_ERROR",
					"message": "Storage connection failed",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Storage connected",
			"driver":  cfg.StorageDriver,
			"key":     cfg.StorageKey,
		})
	}
}
