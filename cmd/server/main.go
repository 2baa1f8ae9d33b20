package main

import (
	"flag"
	"log"

	"github.com/amoreau/flightlog-backend-go/internal/api"
	"github.com/amoreau/flightlog-backend-go/internal/config"
	"github.com/amoreau/flightlog-backend-go/internal/database"
	"github.com/amoreau/flightlog-backend-go/internal/handler"
	"github.com/amoreau/flightlog-backend-go/internal/pipeline"
	"github.com/amoreau/flightlog-backend-go/internal/repository"
	"github.com/amoreau/flightlog-backend-go/internal/service"
	"github.com/amoreau/flightlog-backend-go/internal/source"
	"github.com/amoreau/flightlog-backend-go/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	rebuildOnStart := flag.Bool("rebuild", false, "rebuild the dataset before serving")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer appLogger.Sync()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		appLogger.Fatal("failed to open database", logger.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("failed to run migrations", logger.Error(err))
	}

	flightRepo := repository.NewFlightRepository(db)
	src := source.New(cfg.DataDir, appLogger)
	pipe := pipeline.New(cfg.Rules, appLogger)

	flightService := service.NewFlightService(flightRepo, cfg.Locale, cfg.Home)
	exportService := service.NewExportService(flightService)
	rebuildService := service.NewRebuildService(src, pipe, flightRepo, cfg.Pilots, appLogger)

	if *rebuildOnStart {
		result, err := rebuildService.Rebuild()
		if err != nil {
			appLogger.Fatal("initial rebuild failed", logger.Error(err))
		}
		appLogger.Info("initial rebuild complete",
			logger.Int("pilots", result.Pilots),
			logger.Int("flights", result.Flights))
	}

	router := api.SetupRouter(cfg, appLogger, api.Handlers{
		Flight: handler.NewFlightHandler(flightService),
		Site:   handler.NewSiteHandler(flightService),
		Export: handler.NewExportHandler(exportService),
		Admin:  handler.NewAdminHandler(rebuildService),
	})

	appLogger.Info("server starting", logger.String("port", cfg.Port))
	if err := router.Run(cfg.Port); err != nil {
		appLogger.Fatal("server exited", logger.Error(err))
	}
}
