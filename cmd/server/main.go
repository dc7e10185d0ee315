package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	app "github.com/invoicely/backend/internal/application/invoicing"
	"github.com/invoicely/backend/internal/domain/invoicing"
	"github.com/invoicely/backend/internal/infrastructure/cache"
	"github.com/invoicely/backend/internal/infrastructure/config"
	"github.com/invoicely/backend/internal/infrastructure/localstore"
	"github.com/invoicely/backend/internal/infrastructure/logger"
	"github.com/invoicely/backend/internal/infrastructure/persistence"
	"github.com/invoicely/backend/internal/infrastructure/persistence/models"
	"github.com/invoicely/backend/internal/infrastructure/rendering"
	"github.com/invoicely/backend/internal/interfaces/http/handler"
	"github.com/invoicely/backend/internal/interfaces/http/middleware"
	"github.com/invoicely/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Invoicely Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("storage", cfg.Storage.Backend),
	)

	// Initialize the persistence backend. "postgres" and "sqlite" go
	// through GORM; "file" uses the JSON local store.
	var (
		invoiceRepo  invoicing.InvoiceRepository
		templateRepo invoicing.TemplateRepository
		db           *persistence.Database
	)
	switch cfg.Storage.Backend {
	case "file":
		store, err := localstore.Open(cfg.Storage.FilePath)
		if err != nil {
			log.Fatal("Failed to open local store", zap.Error(err))
		}
		invoiceRepo = localstore.NewInvoiceRepository(store)
		templateRepo = localstore.NewTemplateRepository(store)
		log.Info("Local store opened", zap.String("path", cfg.Storage.FilePath))
	default:
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		db, err = persistence.NewDatabaseWithLogger(cfg.Storage.Backend, &cfg.Database, gormLog)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()

		// Postgres schemas are managed by the migrate command; sqlite
		// databases are created in place.
		if cfg.Storage.Backend == "sqlite" {
			if err := db.DB.AutoMigrate(
				&models.InvoiceModel{},
				&models.InvoiceItemModel{},
				&models.InvoiceTemplateModel{},
				&models.TemplateItemModel{},
			); err != nil {
				log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
			}
		}

		invoiceRepo = persistence.NewGormInvoiceRepository(db.DB)
		templateRepo = persistence.NewGormTemplateRepository(db.DB)
		log.Info("Database connected successfully")
	}

	// Rendered-document cache
	var docCache app.DocumentCache
	switch cfg.Cache.Backend {
	case "redis":
		redisCache, err := cache.NewRedisDocumentCache(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis cache", zap.Error(err))
			}
		}()
		docCache = redisCache
		log.Info("Redis document cache connected", zap.String("addr", cfg.Redis.Addr()))
	default:
		memCache := cache.NewMemoryDocumentCache()
		defer memCache.Close()
		docCache = memCache
	}

	// Document renderer
	renderer, err := rendering.NewEngine()
	if err != nil {
		log.Fatal("Failed to initialize document renderer", zap.Error(err))
	}

	// Application services
	invoiceService := app.NewInvoiceService(invoiceRepo, templateRepo)
	templateService := app.NewTemplateService(templateRepo)
	documentService := app.NewDocumentService(invoiceRepo, renderer, docCache, cfg.Cache.TTL)

	// HTTP handlers
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, documentService)
	templateHandler := handler.NewTemplateHandler(templateService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(invoiceHandler).
		Register(templateHandler).
		Register(systemHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints. A nil db
// means the file-backed store is in use, which has no liveness to probe.
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.Ping(); err != nil {
				logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"time":     time.Now().Format(time.RFC3339),
					"database": "error",
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
