package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/skycast/backend/internal/domain"
)

const testAPIKey = "test-key"

const londonWeatherJSON = `{
	"coord": {"lon": -0.1257, "lat": 51.5085},
	"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
	"main": {"temp": 14.6, "feels_like": 14.1, "pressure": 1012, "humidity": 77},
	"wind": {"speed": 4.63, "deg": 250},
	"sys": {"country": "GB"},
	"name": "London",
	"cod": 200
}`

const airPollutionJSON = `{
	"coord": {"lon": -0.1257, "lat": 51.5085},
	"list": [{"main": {"aqi": 2}, "components": {"co": 201.94, "no2": 0.77}, "dt": 1605182400}]
}`

// newUpstream starts a fake OpenWeatherMap API
func newUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) OpenWeatherConfig {
	return OpenWeatherConfig{
		APIKey:  testAPIKey,
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}
}

// fakeWeather is a scripted WeatherProvider
type fakeWeather struct {
	mu     sync.Mutex
	result domain.WeatherResult
	err    error
	calls  []string
}

func (f *fakeWeather) FetchWeather(_ context.Context, city string) (domain.WeatherResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, city)
	return f.result, f.err
}

// fakeAirQuality is a scripted AirQualityProvider
type fakeAirQuality struct {
	mu    sync.Mutex
	index domain.AirQualityIndex
	err   error
	calls []domain.Coordinates
}

func (f *fakeAirQuality) FetchAirQuality(_ context.Context, lat, lon float64) (domain.AirQualityIndex, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, domain.Coordinates{Lat: lat, Lon: lon})
	return f.index, f.err
}

func float64Ptr(v float64) *float64 { return &v }

func parisWeather() domain.WeatherResult {
	return domain.WeatherResult{
		City:               "Paris",
		Country:            "FR",
		TemperatureCelsius: 18.2,
		ConditionMain:      "Clear",
		Description:        "clear sky",
		WindSpeedMps:       2.1,
		WindDirectionDeg:   float64Ptr(90),
		HumidityPercent:    55,
		Coordinates:        domain.Coordinates{Lat: 48.8534, Lon: 2.3488},
	}
}

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)
