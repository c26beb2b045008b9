package service

import (
	"context"
	"net/url"

	"github.com/skycast/backend/internal/domain"
)

// WeatherService fetches current conditions by city name
type WeatherService struct {
	client openWeatherClient
}

// NewWeatherService creates a new weather service
func NewWeatherService(cfg OpenWeatherConfig) *WeatherService {
	return &WeatherService{client: newOpenWeatherClient(cfg)}
}

var _ domain.WeatherProvider = (*WeatherService)(nil)

// OpenWeatherResponse represents the /weather response. Pointers mark the
// fields whose absence makes the body unusable.
type OpenWeatherResponse struct {
	Coord *struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	} `json:"coord"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        *string `json:"main"`
		Description *string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// FetchWeather fetches current weather for a city in metric units.
// The city is sent as-is; an empty name is left for the upstream to reject.
func (s *WeatherService) FetchWeather(ctx context.Context, city string) (domain.WeatherResult, error) {
	const op = "weather"

	query := url.Values{}
	query.Set("q", city)
	query.Set("units", "metric")

	var owResp OpenWeatherResponse
	resp, err := s.client.get(ctx, op, "/weather", query, domain.MsgWeatherFailed, &owResp)
	if err != nil {
		return domain.WeatherResult{}, err
	}

	if missing := owResp.missing(); len(missing) > 0 {
		return domain.WeatherResult{}, resp.missingFields(missing...)
	}

	weather := domain.WeatherResult{
		City:               owResp.Name,
		Country:            owResp.Sys.Country,
		TemperatureCelsius: *owResp.Main.Temp,
		ConditionMain:      *owResp.Weather[0].Main,
		Description:        *owResp.Weather[0].Description,
		WindSpeedMps:       *owResp.Wind.Speed,
		HumidityPercent:    *owResp.Main.Humidity,
		Coordinates: domain.Coordinates{
			Lat: *owResp.Coord.Lat,
			Lon: *owResp.Coord.Lon,
		},
	}
	if owResp.Wind.Deg != nil {
		deg := *owResp.Wind.Deg
		weather.WindDirectionDeg = &deg
	}

	return weather, nil
}

func (r *OpenWeatherResponse) missing() []string {
	var fields []string
	if r.Main == nil || r.Main.Temp == nil {
		fields = append(fields, "main.temp")
	}
	if r.Main == nil || r.Main.Humidity == nil {
		fields = append(fields, "main.humidity")
	}
	if len(r.Weather) == 0 || r.Weather[0].Main == nil {
		fields = append(fields, "weather[0].main")
	}
	if len(r.Weather) == 0 || r.Weather[0].Description == nil {
		fields = append(fields, "weather[0].description")
	}
	if r.Wind == nil || r.Wind.Speed == nil {
		fields = append(fields, "wind.speed")
	}
	if r.Coord == nil || r.Coord.Lat == nil || r.Coord.Lon == nil {
		fields = append(fields, "coord")
	}
	return fields
}
