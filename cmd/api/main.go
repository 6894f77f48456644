package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lumina-retail/storefront-backend/api/controllers"
	"github.com/lumina-retail/storefront-backend/api/routes"
	"github.com/lumina-retail/storefront-backend/internal/admin"
	"github.com/lumina-retail/storefront-backend/internal/adminauth"
	"github.com/lumina-retail/storefront-backend/internal/cart"
	"github.com/lumina-retail/storefront-backend/internal/catalog"
	"github.com/lumina-retail/storefront-backend/internal/checkout"
	"github.com/lumina-retail/storefront-backend/internal/orders"
	"github.com/lumina-retail/storefront-backend/internal/search"
	"github.com/lumina-retail/storefront-backend/internal/session"
	"github.com/lumina-retail/storefront-backend/pkg/adminapi"
	"github.com/lumina-retail/storefront-backend/pkg/catalogapi"
	"github.com/lumina-retail/storefront-backend/pkg/config"
	"github.com/lumina-retail/storefront-backend/pkg/db"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/metrics"
	"github.com/lumina-retail/storefront-backend/pkg/orderapi"
	"github.com/lumina-retail/storefront-backend/pkg/redis"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	pingers := map[string]controllers.Pinger{}

	var sessions session.Store
	if cfg.FeatureFlags.UseSQLite {
		dbClient, err := db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap embedded store", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing embedded store", err)
			}
		}()
		pingers["db"] = dbClient
		sessions = session.NewGormStore(dbClient.DB())
	} else {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		pingers["redis"] = redisClient
		sessions = session.NewRedisStore(redisClient)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	gatewayMetrics := metrics.NewGatewayMetrics(registry)

	catalogClient := catalogapi.NewClient(cfg.Catalog, logg)
	orderClient := orderapi.NewClient(cfg.Order, logg)
	adminClient := adminapi.NewClient(cfg.Admin, logg)
	pingers["catalog"] = pingerFunc(catalogClient.Health)

	carts := cart.NewStore(sessions, cfg.Session.CartTTL, logg, gatewayMetrics)
	searchState := search.NewState(sessions, cfg.Session.SearchTTL)
	catalogCache := catalog.NewCache(catalogClient, logg, gatewayMetrics)
	lastOrders := orders.NewLastOrderStore(sessions, cfg.Session.LastOrderTTL, logg)
	checkoutFlow := checkout.NewFlow(carts, lastOrders, orderClient, logg, gatewayMetrics)
	adminAuth := adminauth.NewService(sessions, adminClient, cfg.Session.AdminTTL, logg)
	adminService := admin.NewService(adminClient, adminAuth, logg)

	addr := ":" + cfg.App.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			Pingers:    pingers,
			Registry:   registry,
			Carts:      carts,
			Catalog:    catalogCache,
			Search:     searchState,
			Checkout:   checkoutFlow,
			LastOrders: lastOrders,
			AdminAuth:  adminAuth,
			Admin:      adminService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
