package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zipweather/datasource"
	"zipweather/models"
	"zipweather/store"
	"zipweather/transform"
)

type fakeFetcher struct {
	raw *models.RawWeatherResponse
	err error
}

func (f fakeFetcher) Name() string { return "fake" }
func (f fakeFetcher) FetchWeather(ctx context.Context, zipCode string) (*models.RawWeatherResponse, error) {
	return f.raw, f.err
}

type recordingPersister struct {
	calls int
	got   *models.WeatherRecord
}

func (r *recordingPersister) Path() string { return "mem" }
func (r *recordingPersister) Write(record *models.WeatherRecord) error {
	r.calls++
	r.got = record
	return nil
}

func TestRun_EndToEnd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("zip") != "99501" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"name":"Anchorage","main":{"temp":270.5,"humidity":80},"weather":[{"description":"clear sky"}],"wind":{"speed":3.1,"deg":200}}`)
	}))
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "fetch_weather_zipcode_99501.csv")
	provider := datasource.NewOpenWeatherMapProvider("k", datasource.WithBaseURL(ts.URL))
	p := New(provider, store.NewCSVWriter(path), "99501", nil)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, res.OutputPath)
	assert.Equal(t, "Anchorage", res.Record.City)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "city,temperature,humidity,weather,wind_speed,wind_deg\nAnchorage,270.5,80,clear sky,3.1,200\n", string(data))
}

func TestRun_NotFoundWritesNothing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
	}))
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "out.csv")
	provider := datasource.NewOpenWeatherMapProvider("k", datasource.WithBaseURL(ts.URL))

	_, err := New(provider, store.NewCSVWriter(path), "00000", nil).Run(context.Background())
	require.Error(t, err)

	var fe *datasource.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, datasource.ReasonNotFound, fe.Reason)
	assert.False(t, datasource.IsTemporary(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_FetchErrorSkipsPersist(t *testing.T) {
	persister := &recordingPersister{}
	fetchErr := &datasource.FetchError{Provider: "fake", Reason: datasource.ReasonServer, StatusCode: 503}

	_, err := New(fakeFetcher{err: fetchErr}, persister, "99501", nil).Run(context.Background())
	require.ErrorIs(t, err, fetchErr)
	assert.True(t, datasource.IsTemporary(err))
	assert.Zero(t, persister.calls)
}

func TestRun_SchemaErrorSkipsPersist(t *testing.T) {
	name := "Anchorage"
	persister := &recordingPersister{}

	_, err := New(fakeFetcher{raw: &models.RawWeatherResponse{Name: &name}}, persister, "99501", nil).Run(context.Background())
	require.ErrorIs(t, err, transform.ErrMissingField)
	assert.Zero(t, persister.calls)
}

func TestRun_AbsentResponseHitsNoRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	_, err := New(fakeFetcher{}, store.NewCSVWriter(path), "99501", nil).Run(context.Background())
	require.ErrorIs(t, err, store.ErrNoRecord)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_PassesRecordToPersister(t *testing.T) {
	city, desc := "Nome", "snow"
	temp, hum, speed, deg := 250.0, 90.0, 7.5, 10.0
	raw := &models.RawWeatherResponse{
		Name:    &city,
		Main:    &models.RawMain{Temp: &temp, Humidity: &hum},
		Weather: []models.RawWeatherStatus{{Description: &desc}},
		Wind:    &models.RawWind{Speed: &speed, Deg: &deg},
	}
	persister := &recordingPersister{}

	res, err := New(fakeFetcher{raw: raw}, persister, "99762", nil).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, persister.calls)

	want := models.WeatherRecord{City: "Nome", Temperature: 250, Humidity: 90, Weather: "snow", WindSpeed: 7.5, WindDeg: 10}
	assert.Equal(t, want, *persister.got)
	assert.Equal(t, want, res.Record)
	assert.Equal(t, "mem", res.OutputPath)
}
