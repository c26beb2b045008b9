package service

import (
	"context"

	"github.com/skycast/backend/internal/domain"
)

// Providers are re-exported from domain for convenience
type (
	WeatherProvider    = domain.WeatherProvider
	AirQualityProvider = domain.AirQualityProvider
)

// Searcher runs one orchestrated search
type Searcher interface {
	Search(ctx context.Context, city string) (domain.SearchResult, error)
}
