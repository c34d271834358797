package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"zipweather/datasource"
	"zipweather/models"
	"zipweather/transform"
)

// Persister stores a finished record
type Persister interface {
	Write(record *models.WeatherRecord) error
	Path() string
}

// Result describes a completed run
type Result struct {
	Record     models.WeatherRecord
	OutputPath string
}

// Pipeline runs fetch, transform and persist once for a single ZIP code
type Pipeline struct {
	fetcher   datasource.Fetcher
	persister Persister
	zipCode   string
	logger    *slog.Logger
}

// New creates a pipeline. A nil logger discards output.
func New(fetcher datasource.Fetcher, persister Persister, zipCode string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		fetcher:   fetcher,
		persister: persister,
		zipCode:   zipCode,
		logger:    logger,
	}
}

// Run executes the three stages in order. A failed fetch stops the run before
// anything is written.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	log := p.logger.With("zip_code", p.zipCode, "provider", p.fetcher.Name())

	log.Debug("fetching current weather")
	raw, err := p.fetcher.FetchWeather(ctx, p.zipCode)
	if err != nil {
		log.Error("fetch failed",
			"error", err,
			"temporary", datasource.IsTemporary(err),
		)
		return Result{}, fmt.Errorf("fetch weather for %s: %w", p.zipCode, err)
	}

	record, err := transform.Transform(raw)
	if err != nil {
		log.Error("unexpected response schema", "error", err)
		return Result{}, fmt.Errorf("transform weather for %s: %w", p.zipCode, err)
	}
	if record == nil {
		log.Warn("no weather data to persist")
	} else {
		log.Debug("transformed weather record", "city", record.City, "temperature", record.Temperature)
	}

	if err := p.persister.Write(record); err != nil {
		log.Error("persist failed", "path", p.persister.Path(), "error", err)
		return Result{}, fmt.Errorf("persist weather for %s: %w", p.zipCode, err)
	}

	res := Result{OutputPath: p.persister.Path()}
	if record != nil {
		res.Record = *record
	}
	log.Info("weather record saved", "path", res.OutputPath, "city", res.Record.City)
	return res, nil
}
