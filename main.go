package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SigNoz/cart-graphql-api/internal/api"
	"github.com/SigNoz/cart-graphql-api/internal/db"
	"github.com/SigNoz/cart-graphql-api/internal/format"
	"github.com/SigNoz/cart-graphql-api/internal/gql"
	"github.com/SigNoz/cart-graphql-api/internal/logging"
	"github.com/SigNoz/cart-graphql-api/internal/metrics"
	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/SigNoz/cart-graphql-api/internal/services"
	"github.com/SigNoz/cart-graphql-api/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	logger, err := logging.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize OpenTelemetry metrics
	ctx := context.Background()
	appMetrics, meterProvider, err := metrics.InitMetrics(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			logger.Error("error shutting down meter provider", zap.Error(err))
		}
	}()

	products, err := loadCatalog(ctx, cfg, appMetrics, logger)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	// Initialize services
	catalog := services.NewProductService(products, appMetrics)
	pricing := services.PricingPolicy{
		TaxRate:               cfg.TaxRate,
		ShippingFee:           cfg.ShippingFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
	}
	cartService := services.NewCartService(services.NewMemoryCartStore(), catalog, pricing, appMetrics, logger)
	adapter := api.NewAdapter(cartService, catalog, format.NewCurrency(cfg.CurrencyLocale, cfg.CurrencySuffix), cfg.DefaultUserID)

	schema, err := gql.NewSchema(adapter)
	if err != nil {
		logger.Fatal("failed to build graphql schema", zap.Error(err))
	}

	// Initialize app
	app := api.NewApp(adapter, gql.NewHandler(schema, cfg.AppEnv != "production"), appMetrics, logger)

	// Setup router
	router := mux.NewRouter()
	app.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.GetAppPortInt()),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("graphql", "/graphql"),
			zap.String("catalog_source", cfg.CatalogSource),
			zap.String("otlp_endpoint", cfg.OTELExporterOTLPEndpoint),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited")
}

// loadCatalog returns the built-in seed catalog, or reads it once from MySQL
// when CATALOG_SOURCE=mysql
func loadCatalog(ctx context.Context, cfg *config.Config, m *metrics.AppMetrics, logger *zap.Logger) ([]models.Product, error) {
	if cfg.CatalogSource != config.CatalogSourceMySQL {
		return services.SeedProducts(), nil
	}

	database, err := db.NewDB(ctx, cfg.GetDSN(), cfg.OTELServiceName, m, logger)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	schemaSQL, err := os.ReadFile("schema.sql")
	if err != nil {
		logger.Warn("could not read schema.sql, assuming schema exists", zap.Error(err))
	} else if err := database.InitSchema(ctx, string(schemaSQL)); err != nil {
		logger.Warn("could not initialize schema, assuming schema exists", zap.Error(err))
	}

	return database.LoadProducts(ctx)
}
