package models

// RawWeatherResponse is the subset of the OpenWeatherMap current weather body
// that we consume. Fields are pointers so a missing key can be told apart
// from a zero value.
type RawWeatherResponse struct {
	Name    *string            `json:"name"`
	Main    *RawMain           `json:"main"`
	Weather []RawWeatherStatus `json:"weather"`
	Wind    *RawWind           `json:"wind"`
}

// RawMain holds the "main" block of the response
type RawMain struct {
	Temp     *float64 `json:"temp"`
	Humidity *float64 `json:"humidity"`
}

// RawWeatherStatus is one entry of the "weather" array
type RawWeatherStatus struct {
	Description *string `json:"description"`
}

// RawWind holds the "wind" block of the response
type RawWind struct {
	Speed *float64 `json:"speed"`
	Deg   *float64 `json:"deg"`
}

// WeatherRecord is the flattened weather reading written to disk
type WeatherRecord struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Weather     string  `json:"weather"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDeg     float64 `json:"wind_deg"`
}

// RecordColumns lists the record keys in output order
var RecordColumns = []string{"city", "temperature", "humidity", "weather", "wind_speed", "wind_deg"}
