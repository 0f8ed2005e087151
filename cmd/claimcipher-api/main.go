// README: Entry point; loads config, wires stores and services, serves the HTTP API until SIGTERM.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"claimcipher/internal/config"
	httptransport "claimcipher/internal/http"
	"claimcipher/internal/infra"
	"claimcipher/internal/maps"
	"claimcipher/internal/modules/firm"
	"claimcipher/internal/modules/mileage"
	"claimcipher/internal/modules/route"
	"claimcipher/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("claimcipher-api exited", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := migrations.Apply(ctx, dbPool); err != nil {
		return err
	}
	logger.Info("schema applied")

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	firmSvc := firm.NewService(firm.NewStore(dbPool), logger)
	if _, err := firmSvc.SeedDefaults(ctx); err != nil {
		return err
	}

	var legs route.LegSource
	if cfg.Maps.APIKey != "" {
		routeMaps, err := maps.NewRouteService(cfg.Maps.APIKey, logger)
		if err != nil {
			return err
		}
		legs = routeMaps
	} else {
		logger.Warn("CLAIMCIPHER_MAPS_API_KEY not set; route planning disabled")
	}

	routeSvc := route.NewService(legs, route.NewStore(redisClient), route.Options{
		Defaults: route.Settings{
			MaxLegMiles:     cfg.Route.MaxLegMiles,
			SplitEnabled:    cfg.Route.SplitEnabled,
			OptimizeEnabled: cfg.Route.OptimizeEnabled,
		},
		MaxDestinations: cfg.Route.MaxDestinations,
		ExportTTL:       cfg.Route.ExportTTL,
	}, logger)

	mileageSvc := mileage.NewService(firmSvc, mileage.NewStore(dbPool), routeSvc, logger)

	server := httptransport.NewServer(httptransport.ServerDeps{
		Addr:        cfg.HTTP.Addr,
		Firm:        firmSvc,
		Mileage:     mileageSvc,
		Route:       routeSvc,
		Log:         logger,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})
	return server.Run(ctx)
}
