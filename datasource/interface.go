package datasource

import (
	"context"

	"zipweather/models"
)

// Fetcher defines the interface for a current-weather provider queried by ZIP code.
// On failure the payload is nil and the error is a *FetchError.
type Fetcher interface {
	Name() string
	FetchWeather(ctx context.Context, zipCode string) (*models.RawWeatherResponse, error)
}
