package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/onlineshop/backend/internal/application/catalog"
	identityapp "github.com/onlineshop/backend/internal/application/identity"
	orderapp "github.com/onlineshop/backend/internal/application/order"
	reportapp "github.com/onlineshop/backend/internal/application/report"
	"github.com/onlineshop/backend/internal/domain/cart"
	"github.com/onlineshop/backend/internal/infrastructure/auth"
	"github.com/onlineshop/backend/internal/infrastructure/config"
	cartstore "github.com/onlineshop/backend/internal/infrastructure/cart"
	"github.com/onlineshop/backend/internal/infrastructure/logger"
	"github.com/onlineshop/backend/internal/infrastructure/persistence"
	"github.com/onlineshop/backend/internal/infrastructure/storage"
	"github.com/onlineshop/backend/internal/interfaces/http/handler"
	"github.com/onlineshop/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	carts := newCartStore(cfg, log)
	images, proofs := newFileStores(cfg, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	productService := catalogapp.NewProductService(productRepo, categoryRepo, images)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	suggestionService := catalogapp.NewSuggestionService(productRepo, images)
	cartService := orderapp.NewCartService(carts, productRepo)
	orderService := orderapp.NewOrderService(orderRepo, productRepo, userRepo, carts, proofs)
	authService := identityapp.NewAuthService(userRepo, jwtService, cfg.Admin, log)
	userService := identityapp.NewUserService(userRepo, log)
	reportService := reportapp.NewService(reportRepo)

	engine := router.Setup(cfg, jwtService, log, router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Catalog:       handler.NewCatalogHandler(productService, categoryService),
		Cart:          handler.NewCartHandler(cartService),
		Order:         handler.NewOrderHandler(orderService),
		Suggestion:    handler.NewSuggestionHandler(suggestionService),
		ProductAdmin:  handler.NewProductAdminHandler(productService, suggestionService),
		CategoryAdmin: handler.NewCategoryAdminHandler(categoryService),
		OrderAdmin:    handler.NewOrderAdminHandler(orderService),
		UserAdmin:     handler.NewUserAdminHandler(userService),
		Report:        handler.NewReportHandler(reportService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// newCartStore picks Redis-backed carts when Redis is enabled, otherwise
// falls back to the in-process store.
func newCartStore(cfg *config.Config, log *zap.Logger) cart.Store {
	if !cfg.Redis.Enabled {
		log.Info("Using in-memory cart store")
		return cartstore.NewMemoryStore()
	}

	store, err := cartstore.NewRedisStore(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Using Redis cart store", zap.String("addr", cfg.Redis.Addr()))
	return store
}

// newFileStores builds the product image and payment proof stores for the
// configured upload backend.
func newFileStores(cfg *config.Config, log *zap.Logger) (catalogapp.ImageStore, orderapp.ProofStore) {
	switch cfg.Upload.Backend {
	case "s3":
		images, err := storage.NewS3Storage(cfg.Upload.S3, "products", storage.WithS3Logger(log))
		if err != nil {
			log.Fatal("Failed to create S3 image store", zap.Error(err))
		}
		proofs, err := storage.NewS3Storage(cfg.Upload.S3, "proofs", storage.WithS3Logger(log))
		if err != nil {
			log.Fatal("Failed to create S3 proof store", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := images.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure S3 bucket", zap.Error(err))
		}

		log.Info("Using S3 file storage", zap.String("bucket", cfg.Upload.S3.Bucket))
		return images, proofs

	default:
		images, err := storage.NewLocalStorage(cfg.Upload.ProductDir, log)
		if err != nil {
			log.Fatal("Failed to create image directory", zap.Error(err))
		}
		proofs, err := storage.NewLocalStorage(cfg.Upload.ProofDir, log)
		if err != nil {
			log.Fatal("Failed to create proof directory", zap.Error(err))
		}
		log.Info("Using local file storage",
			zap.String("products", cfg.Upload.ProductDir),
			zap.String("proofs", cfg.Upload.ProofDir),
		)
		return images, proofs
	}
}
