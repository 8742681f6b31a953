package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/acedk/steakout-backend/api/routes"
	"github.com/acedk/steakout-backend/internal/catalog"
	"github.com/acedk/steakout-backend/internal/deduction"
	"github.com/acedk/steakout-backend/internal/orders"
	"github.com/acedk/steakout-backend/internal/settings"
	"github.com/acedk/steakout-backend/internal/stock"
	"github.com/acedk/steakout-backend/internal/suppliers"
	"github.com/acedk/steakout-backend/pkg/config"
	"github.com/acedk/steakout-backend/pkg/db"
	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/acedk/steakout-backend/pkg/logger"
	"github.com/acedk/steakout-backend/pkg/metrics"
	"github.com/acedk/steakout-backend/pkg/migrate"
	pkgredis "github.com/acedk/steakout-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fatal(nil, "loading config", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "steakout-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		fatal(logg, "connecting to database", err)
	}
	defer client.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
		fatal(logg, "running migrations", err)
	}

	redisClient, err := pkgredis.New(ctx, cfg.Redis, logg)
	if err != nil {
		fatal(logg, "connecting to redis", err)
	}
	defer redisClient.Close()

	policies, err := catalog.LoadPolicyTable(cfg.Catalog.PolicyPath)
	if err != nil {
		fatal(logg, "loading free-addon policies", err)
	}
	ruleTable, err := deduction.LoadRuleTable(cfg.Catalog.RuleTablePath)
	if err != nil {
		fatal(logg, "loading deduction rules", err)
	}
	location, err := enums.ParseStockLocation(cfg.Deduction.Location)
	if err != nil {
		fatal(logg, "parsing deduction location", err)
	}

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	catalogSvc, err := catalog.NewService(catalog.NewRepository(client.DB()), policies)
	if err != nil {
		fatal(logg, "wiring catalog service", err)
	}
	stockSvc, err := stock.NewService(client, stock.NewRepository(client.DB()), logg, orderMetrics, location)
	if err != nil {
		fatal(logg, "wiring stock service", err)
	}
	settingsSvc, err := settings.NewService(settings.NewRepository(client.DB()))
	if err != nil {
		fatal(logg, "wiring settings service", err)
	}
	supplierSvc, err := suppliers.NewService(suppliers.NewRepository(client.DB()))
	if err != nil {
		fatal(logg, "wiring supplier service", err)
	}
	orderSvc, err := orders.NewService(client, orders.NewRepository(client.DB()),
		catalogSvc, stockSvc, settingsSvc, ruleTable, logg, orderMetrics)
	if err != nil {
		fatal(logg, "wiring order service", err)
	}

	router := routes.NewRouter(routes.Dependencies{
		Config:   cfg,
		Logger:   logg,
		DB:       client,
		Redis:    redisClient,
		Catalog:  catalogSvc,
		Orders:   orderSvc,
		Stock:    stockSvc,
		Settings: settingsSvc,
		Supplier: supplierSvc,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "server.start")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logg, "server stopped", err)
		}
	}()

	<-ctx.Done()
	logg.Info(context.Background(), "server.shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "server shutdown failed", err)
	}
}

func fatal(logg *logger.Logger, msg string, err error) {
	if logg != nil {
		logg.Error(context.Background(), msg, err)
	} else {
		os.Stderr.WriteString(msg + ": " + err.Error() + "\n")
	}
	os.Exit(1)
}
