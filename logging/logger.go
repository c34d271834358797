package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"

	"zipweather/config"
)

const appName = "zipweather"

// New returns a colourised text logger in dev and a JSON logger otherwise.
// Every line carries the run id so one invocation can be traced end to end.
func New(cfg config.Config, w io.Writer) *slog.Logger {
	runID := uuid.NewString()

	if cfg.AppEnv == "dev" {
		h := tint.NewHandler(w, &tint.Options{
			Level:      cfg.LogLevel,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", appName, "run_id", runID)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})
	return slog.New(h).With(
		"app", appName,
		"env", cfg.AppEnv,
		"run_id", runID,
	)
}
