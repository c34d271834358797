package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"zipweather/models"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// maxErrorBody caps how much of a failed response is kept in the error
const maxErrorBody = 1024

// OpenWeatherMapProvider implements Fetcher against the OpenWeatherMap current weather API
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures an OpenWeatherMapProvider
type Option func(*OpenWeatherMapProvider)

// WithBaseURL points the provider at a different API root
func WithBaseURL(baseURL string) Option {
	return func(p *OpenWeatherMapProvider) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(p *OpenWeatherMapProvider) {
		p.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client entirely
func WithHTTPClient(cli *http.Client) Option {
	return func(p *OpenWeatherMapProvider) {
		if cli != nil {
			p.httpClient = cli
		}
	}
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(apiKey string, opts ...Option) *OpenWeatherMapProvider {
	p := &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// FetchWeather fetches current weather for a US ZIP code.
// Any outcome other than HTTP 200 with a decodable body yields a nil payload and a *FetchError.
func (p *OpenWeatherMapProvider) FetchWeather(ctx context.Context, zipCode string) (*models.RawWeatherResponse, error) {
	// Build URL
	params := url.Values{}
	params.Add("zip", zipCode)
	params.Add("appid", p.apiKey)
	endpoint := fmt.Sprintf("%s/weather?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, p.fail(ReasonTransport, 0, "", fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, p.fail(ReasonTransport, 0, "", fmt.Errorf("failed to execute request: %w", redactKey(err, p.apiKey)))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// read a small body for debugging
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, p.fail(reasonForStatus(resp.StatusCode), resp.StatusCode, strings.TrimSpace(string(b)), nil)
	}

	var response models.RawWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, p.fail(ReasonDecode, resp.StatusCode, "", fmt.Errorf("failed to parse response: %w", err))
	}

	return &response, nil
}

func (p *OpenWeatherMapProvider) fail(reason Reason, status int, body string, err error) *FetchError {
	return &FetchError{
		Provider:   p.Name(),
		Reason:     reason,
		StatusCode: status,
		Body:       body,
		Err:        err,
	}
}

// redactKey strips the API key out of transport errors, which embed the request URL
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

var _ Fetcher = (*OpenWeatherMapProvider)(nil)
