package domain

import "context"

// WeatherProvider resolves current conditions for a city.
// The domain defines the interface so the orchestrator can be tested without HTTP.
type WeatherProvider interface {
	// FetchWeather returns normalized conditions for the city
	FetchWeather(ctx context.Context, city string) (WeatherResult, error)
}

// AirQualityProvider resolves the air quality index at a point
type AirQualityProvider interface {
	// FetchAirQuality returns the index at lat/lon
	FetchAirQuality(ctx context.Context, lat, lon float64) (AirQualityIndex, error)
}
