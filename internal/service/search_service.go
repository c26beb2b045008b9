package service

import (
	"context"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/skycast/backend/internal/domain"
	"github.com/skycast/backend/pkg/utils"
)

// SearchService chains the weather and air quality fetchers
type SearchService struct {
	weather    WeatherProvider
	airQuality AirQualityProvider
	now        func() time.Time
}

// NewSearchService creates a new search orchestrator
func NewSearchService(weather WeatherProvider, airQuality AirQualityProvider) *SearchService {
	return &SearchService{
		weather:    weather,
		airQuality: airQuality,
		now:        time.Now,
	}
}

var _ Searcher = (*SearchService)(nil)

// Search fetches weather for the city, then air quality at the returned
// coordinates. Any failure aborts the whole chain: the result is zero and
// the error is a *domain.SearchError.
func (s *SearchService) Search(ctx context.Context, city string) (domain.SearchResult, error) {
	weather, err := s.weather.FetchWeather(ctx, city)
	if err != nil {
		log.Printf("search: weather fetch for %q failed: %v", city, err)
		return domain.SearchResult{}, domain.NewSearchError(err)
	}

	aqi, err := s.airQuality.FetchAirQuality(ctx, weather.Coordinates.Lat, weather.Coordinates.Lon)
	if err != nil {
		log.Printf("search: air quality fetch for %q failed: %v", city, err)
		return domain.SearchResult{}, domain.NewSearchError(err)
	}

	result := domain.SearchResult{
		ID:              ulid.Make().String(),
		City:            city,
		Weather:         weather,
		AirQuality:      &aqi,
		AirQualityLabel: aqi.Label(),
		FetchedAt:       s.now(),
	}
	if weather.WindDirectionDeg != nil {
		result.WindCompass = utils.CompassDirection(*weather.WindDirectionDeg)
	}

	return result, nil
}
