package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	appcatalog "github.com/commerce/backend/internal/application/catalog"
	appidentity "github.com/commerce/backend/internal/application/identity"
	appinventory "github.com/commerce/backend/internal/application/inventory"
	apppartner "github.com/commerce/backend/internal/application/partner"
	appreport "github.com/commerce/backend/internal/application/report"
	apptrade "github.com/commerce/backend/internal/application/trade"
	"github.com/commerce/backend/internal/domain/trade"
	"github.com/commerce/backend/internal/infrastructure/auth"
	"github.com/commerce/backend/internal/infrastructure/cache"
	"github.com/commerce/backend/internal/infrastructure/config"
	"github.com/commerce/backend/internal/infrastructure/logger"
	"github.com/commerce/backend/internal/infrastructure/persistence"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/commerce/backend/internal/interfaces/http/handler"
	"github.com/commerce/backend/internal/interfaces/http/middleware"
	"github.com/commerce/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "directory containing config.toml")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	db, err := persistence.NewDatabase(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cartStore trade.CartStore
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		cartStore = cache.NewRedisCartStore(client, cfg.Redis.CartTTL)
		log.Info("cart store: redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		cartStore = cache.NewMemoryCartStore()
		log.Info("cart store: in-process memory")
	}

	tokens := auth.NewJWTService(cfg.JWT)
	defaultTenant := uuid.MustParse(cfg.Tenant.DefaultID)

	// Repositories
	products := persistence.NewGormProductRepository(db)
	customers := persistence.NewGormCustomerRepository(db)
	orders := persistence.NewGormOrderRepository(db)
	users := persistence.NewGormUserRepository(db)
	ledger := persistence.NewGormTransactionRepository(db)
	reports := persistence.NewGormReportRepository(db)
	scope := persistence.NewGormTransactionScope(db)

	// Application services
	authService := appidentity.NewAuthService(users, customers, tokens, log)
	productService := appcatalog.NewProductService(products, log)
	customerService := apppartner.NewCustomerService(customers, log)
	cartService := apptrade.NewCartService(cartStore, products, log)
	checkoutService := apptrade.NewCheckoutService(scope, cartStore, cfg.Checkout, log)
	orderService := apptrade.NewOrderService(scope, orders, log)
	stockService := appinventory.NewStockService(scope, ledger, log)
	reportService := appreport.NewReportService(reports)

	gin.SetMode(cfg.Server.Mode)
	if err := dto.RegisterValidations(); err != nil {
		return fmt.Errorf("register validations: %w", err)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.CORS(),
		logger.GinLogger(log),
		logger.GinRecovery(log),
	)

	router.Register(engine, tokens, router.Handlers{
		System:    handler.NewSystemHandler(db),
		Auth:      handler.NewAuthHandler(authService, defaultTenant, log),
		Product:   handler.NewProductHandler(productService, log),
		Customer:  handler.NewCustomerHandler(customerService, log),
		Cart:      handler.NewCartHandler(cartService, checkoutService, users, log),
		Order:     handler.NewOrderHandler(orderService, users, log),
		Inventory: handler.NewInventoryHandler(stockService, log),
		Report:    handler.NewReportHandler(reportService, log),
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("version", handler.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
