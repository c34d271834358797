package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"zipweather/config"
	"zipweather/datasource"
	"zipweather/logging"
	"zipweather/pipeline"
	"zipweather/store"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	configFile := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML or JSON configuration file")
	zipCode := flag.String("zip", "", "US ZIP code to fetch weather for")
	outputPath := flag.String("out", "", "Path of the CSV file to write")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *zipCode != "" {
		cfg.ZipCode = *zipCode
	}
	if *outputPath != "" {
		cfg.OutputPath = *outputPath
	}
	if err := cfg.Finalize(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider := datasource.NewOpenWeatherMapProvider(cfg.APIKey,
		datasource.WithBaseURL(cfg.BaseURL),
		datasource.WithTimeout(cfg.HTTPTimeout),
	)
	p := pipeline.New(provider, store.NewCSVWriter(cfg.OutputPath), cfg.ZipCode, logger)

	res, err := p.Run(ctx)
	if err != nil {
		logger.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}

	fmt.Printf("Data saved to %s\n", res.OutputPath)
}
