package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/skycast/backend/internal/domain"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherConfig configures the upstream fetchers
type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// openWeatherClient issues single-attempt GET requests against OpenWeatherMap
type openWeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newOpenWeatherClient(cfg OpenWeatherConfig) openWeatherClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return openWeatherClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// upstreamErrorBody is the error envelope, e.g. {"cod":"404","message":"city not found"}
type upstreamErrorBody struct {
	Message string `json:"message"`
}

// upstreamResponse is a decoded success response, kept for follow-up validation
type upstreamResponse struct {
	op         string
	statusCode int
	body       []byte
	fallback   string
}

// get performs GET {baseURL}{path}?{query}&appid={key} and decodes a success body into out.
// Transport failures become *domain.NetworkError; everything else *domain.UpstreamError.
func (c openWeatherClient) get(ctx context.Context, op, path string, query url.Values, fallback string, out any) (upstreamResponse, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return upstreamResponse{}, fmt.Errorf("%s: failed to parse url: %w", op, err)
	}

	query.Set("appid", c.apiKey)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return upstreamResponse{}, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return upstreamResponse{}, &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return upstreamResponse{}, &domain.NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamResponse{}, &domain.UpstreamError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(body, fallback),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return upstreamResponse{}, &domain.UpstreamError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    fallback,
			Err:        fmt.Errorf("%s: failed to decode response: %w", op, err),
		}
	}

	return upstreamResponse{op: op, statusCode: resp.StatusCode, body: body, fallback: fallback}, nil
}

// upstreamMessage extracts the "message" field, falling back when absent
func upstreamMessage(body []byte, fallback string) string {
	var e upstreamErrorBody
	if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
		return fallback
	}
	return e.Message
}

// missingFields builds the UpstreamError for a success body lacking required data.
// A "message" in the body still wins over the fallback.
func (r upstreamResponse) missingFields(fields ...string) error {
	return &domain.UpstreamError{
		Op:         r.op,
		StatusCode: r.statusCode,
		Message:    upstreamMessage(r.body, r.fallback),
		Err:        fmt.Errorf("%s: response missing %s", r.op, strings.Join(fields, ", ")),
	}
}
