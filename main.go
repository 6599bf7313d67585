package main

import (
	"context"
	"os"
	"time"

	"parking-analytics/config"
	"parking-analytics/fetcher"
	"parking-analytics/services"
	"parking-analytics/storage"
	"parking-analytics/utils"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger().Error("Invalid configuration: %v", err)
		return err
	}
	logger := utils.NewLoggerWithLevel(os.Stderr, cfg.LogLevel)
	if !cfg.EnvFileLoaded {
		logger.Debug("[config] No .env file found, falling back to system env vars")
	}

	logger.Info("=== Parking popular-times analysis starting ===")
	logger.Info("Config: collection %q | output %s", cfg.LotsCollection, cfg.OutputPath)

	var sinks []services.SummaryWriter
	if cfg.CSVOutputPath != "" {
		sinks = append(sinks, storage.NewCSVWriter(cfg.CSVOutputPath))
	}
	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), &utils.RetryConfig{
			MaxAttempts: cfg.DBConnectRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			return err
		}
		defer pgWriter.Close()
		sinks = append(sinks, pgWriter)
	}

	ctx := context.Background()
	client, err := fetcher.NewClient(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize Firestore: %v", err)
		return err
	}
	defer client.Close()

	output := storage.NewJSONWriter(cfg.OutputPath)
	pipeline := services.NewPipeline(
		fetcher.New(client, cfg.LotsCollection, logger),
		output,
		logger,
		sinks...,
	)

	report, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("Analysis failed: %v", err)
		return err
	}
	logger.Info("Popular times for %d lots saved to %s", report.Len(), output.Path())
	if cfg.CSVOutputPath != "" {
		logger.Info("Hourly rates exported to %s", cfg.CSVOutputPath)
	}

	if err := services.NewReporter().Print(os.Stdout, output.Path(), report); err != nil {
		logger.Error("Failed to print summary: %v", err)
		return err
	}
	return nil
}
