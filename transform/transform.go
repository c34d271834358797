// Package transform flattens a provider response into a WeatherRecord.
package transform

import (
	"errors"
	"fmt"

	"zipweather/models"
)

// ErrMissingField matches any MissingFieldError via errors.Is
var ErrMissingField = errors.New("missing field in weather response")

// MissingFieldError names the first consumed key absent from a response
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingField, e.Path)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// Transform maps a raw response onto a WeatherRecord.
// A nil response yields a nil record and no error.
func Transform(raw *models.RawWeatherResponse) (*models.WeatherRecord, error) {
	if raw == nil {
		return nil, nil
	}

	if raw.Name == nil {
		return nil, &MissingFieldError{Path: "name"}
	}
	if raw.Main == nil {
		return nil, &MissingFieldError{Path: "main"}
	}
	if raw.Main.Temp == nil {
		return nil, &MissingFieldError{Path: "main.temp"}
	}
	if raw.Main.Humidity == nil {
		return nil, &MissingFieldError{Path: "main.humidity"}
	}
	if len(raw.Weather) == 0 {
		return nil, &MissingFieldError{Path: "weather[0]"}
	}
	if raw.Weather[0].Description == nil {
		return nil, &MissingFieldError{Path: "weather[0].description"}
	}
	if raw.Wind == nil {
		return nil, &MissingFieldError{Path: "wind"}
	}
	if raw.Wind.Speed == nil {
		return nil, &MissingFieldError{Path: "wind.speed"}
	}
	if raw.Wind.Deg == nil {
		return nil, &MissingFieldError{Path: "wind.deg"}
	}

	return &models.WeatherRecord{
		City:        *raw.Name,
		Temperature: *raw.Main.Temp,
		Humidity:    *raw.Main.Humidity,
		Weather:     *raw.Weather[0].Description,
		WindSpeed:   *raw.Wind.Speed,
		WindDeg:     *raw.Wind.Deg,
	}, nil
}
