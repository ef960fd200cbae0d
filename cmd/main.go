package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"offerflow/api"
	"offerflow/article"
	"offerflow/config"
	"offerflow/extraction"
	"offerflow/limits"
	"offerflow/normalize"
	"offerflow/pipeline"
	"offerflow/pkg/counterdb"
	"offerflow/pkg/llm"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// =========
	// Config
	// =========
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// LLM extraction client
	// =========
	extractor, err := llm.NewClient(cfg.LLM.Model, config.APIKey(), logger)
	if err != nil {
		logger.Fatal("failed to create llm client", zap.Error(err))
	}

	// =========
	// Article number continuation counter
	// =========
	var counter article.Counter
	if cfg.ArticleNumber.CounterPath != "" {
		store, err := counterdb.Open(cfg.ArticleNumber.CounterPath, cfg.ArticleNumber.Base)
		if err != nil {
			logger.Fatal("failed to open counter db", zap.Error(err))
		}
		defer store.Close()
		counter = store
	}

	// =========
	// Pipeline
	// =========
	validator := limits.NewValidator(limits.Thresholds{
		MaxFileBytes:       cfg.Limits.MaxFileBytes,
		MaxRowsPerSheet:    cfg.Limits.MaxRowsPerSheet,
		MaxColumnsPerSheet: cfg.Limits.MaxColumnsPerSheet,
		MaxSheets:          cfg.Limits.MaxSheets,
	})
	planner := extraction.NewPlanner(cfg.Extraction.RowBudget)
	orch := extraction.NewOrchestrator(extractor, cfg.Extraction.Parallelism, logger)
	normalizer := normalize.NewNormalizer(extractor, logger)

	pipe := pipeline.New(validator, planner, orch, normalizer, pipeline.Numbering{
		Prefix:  cfg.ArticleNumber.Prefix,
		Width:   cfg.ArticleNumber.Width,
		Base:    cfg.ArticleNumber.Base,
		Counter: counter,
	}, logger)

	// =========
	// HTTP API
	// =========
	server := api.NewServer(pipe, logger, cfg.AppPort)
	if err := server.Start(); err != nil {
		logger.Fatal("api server stopped", zap.Error(err))
	}
}
