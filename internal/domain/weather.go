package domain

import "time"

// Coordinates is a geographic point as reported by the weather API
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherResult represents normalized current conditions for a city
type WeatherResult struct {
	City               string      `json:"city"`
	Country            string      `json:"country"`
	TemperatureCelsius float64     `json:"temperature_celsius"`
	ConditionMain      string      `json:"condition_main"` // Clear, Clouds, Rain, Snow, ...
	Description        string      `json:"description"`
	WindSpeedMps       float64     `json:"wind_speed_mps"`
	WindDirectionDeg   *float64    `json:"wind_direction_deg,omitempty"`
	HumidityPercent    float64     `json:"humidity_percent"`
	Coordinates        Coordinates `json:"coordinates"`
}

// SearchResult combines the weather and air quality of one search
type SearchResult struct {
	ID              string           `json:"id"`
	City            string           `json:"city"`
	Weather         WeatherResult    `json:"weather"`
	AirQuality      *AirQualityIndex `json:"air_quality"`
	AirQualityLabel string           `json:"air_quality_label"`
	WindCompass     string           `json:"wind_compass,omitempty"`
	FetchedAt       time.Time        `json:"fetched_at"`
}

// SessionState is the display state a presentation layer renders.
// Result and Error are never both set.
type SessionState struct {
	Sequence uint64        `json:"sequence"`
	Result   *SearchResult `json:"result"`
	Error    *SearchError  `json:"error"`
}

// Clone returns a copy that shares no pointers with w
func (w WeatherResult) Clone() WeatherResult {
	if w.WindDirectionDeg != nil {
		deg := *w.WindDirectionDeg
		w.WindDirectionDeg = &deg
	}
	return w
}

// Clone returns a copy that shares no pointers with r
func (r SearchResult) Clone() SearchResult {
	r.Weather = r.Weather.Clone()
	if r.AirQuality != nil {
		aqi := *r.AirQuality
		r.AirQuality = &aqi
	}
	return r
}
