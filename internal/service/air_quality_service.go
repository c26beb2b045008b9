package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/skycast/backend/internal/domain"
)

// AirQualityService fetches the air quality index for a coordinate pair
type AirQualityService struct {
	client openWeatherClient
}

// NewAirQualityService creates a new air quality service
func NewAirQualityService(cfg OpenWeatherConfig) *AirQualityService {
	return &AirQualityService{client: newOpenWeatherClient(cfg)}
}

var _ domain.AirQualityProvider = (*AirQualityService)(nil)

// AirPollutionResponse represents the /air_pollution response
type AirPollutionResponse struct {
	List []struct {
		Main *struct {
			AQI *int `json:"aqi"`
		} `json:"main"`
	} `json:"list"`
}

// FetchAirQuality returns list[0].main.aqi for the point. The value is not
// range-checked; AirQualityIndex.Label handles out-of-range indexes.
func (s *AirQualityService) FetchAirQuality(ctx context.Context, lat, lon float64) (domain.AirQualityIndex, error) {
	const op = "air_quality"

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var apResp AirPollutionResponse
	resp, err := s.client.get(ctx, op, "/air_pollution", query, domain.MsgAirQualityFailed, &apResp)
	if err != nil {
		return 0, err
	}

	if len(apResp.List) == 0 || apResp.List[0].Main == nil || apResp.List[0].Main.AQI == nil {
		return 0, resp.missingFields("list[0].main.aqi")
	}

	return domain.AirQualityIndex(*apResp.List[0].Main.AQI), nil
}
