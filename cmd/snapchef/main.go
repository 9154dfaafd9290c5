package main

import (
	"log"

	"github.com/snapchef/snapchef/internal/config"
	"github.com/snapchef/snapchef/internal/db"
	"github.com/snapchef/snapchef/internal/enrich"
	"github.com/snapchef/snapchef/internal/imagesearch/serpapi"
	"github.com/snapchef/snapchef/internal/logging"
	"github.com/snapchef/snapchef/internal/photostore/local"
	"github.com/snapchef/snapchef/internal/pipeline"
	"github.com/snapchef/snapchef/internal/samples"
	"github.com/snapchef/snapchef/internal/segmentation/logmeal"
	"github.com/snapchef/snapchef/internal/service"
	"github.com/snapchef/snapchef/internal/store"
	"github.com/snapchef/snapchef/internal/synthesis/gemini"
	"github.com/snapchef/snapchef/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if cfg.LogMealToken == "" {
		logger.Warn("LOGMEAL_API_TOKEN is not set; ingredient detection will fail")
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; recipe synthesis will fail")
	}
	if cfg.SerpAPIKey == "" {
		logger.Warn("SERPAPI_KEY is not set; recipes will fall back to placeholder images")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	scanStore := store.NewScanStore(database)
	trackerStore := store.NewTrackerStore(database)

	photoStg, err := local.New(cfg.PhotoPath)
	if err != nil {
		logger.Error("failed to initialize photo store", "error", err)
		return
	}

	var logmealOpts []logmeal.Option
	if cfg.LogMealAPIURL != "" {
		logmealOpts = append(logmealOpts, logmeal.WithBaseURL(cfg.LogMealAPIURL))
	}
	var geminiOpts []gemini.Option
	if cfg.GeminiAPIURL != "" {
		geminiOpts = append(geminiOpts, gemini.WithBaseURL(cfg.GeminiAPIURL))
	}
	var serpapiOpts []serpapi.Option
	if cfg.SerpAPIURL != "" {
		serpapiOpts = append(serpapiOpts, serpapi.WithBaseURL(cfg.SerpAPIURL))
	}

	orchestrator := pipeline.New(
		logmeal.New(cfg.LogMealToken, logmealOpts...),
		gemini.New(cfg.GeminiAPIKey, geminiOpts...),
		enrich.New(serpapi.New(cfg.SerpAPIKey, serpapiOpts...), logger),
		logger,
	)

	starterRecipes, err := samples.Load()
	if err != nil {
		logger.Error("failed to load starter recipes", "error", err)
		return
	}

	scanService := service.NewScanService(scanStore, photoStg, orchestrator, logger)
	server := web.NewServer(scanService, orchestrator, trackerStore, photoStg, starterRecipes, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
