package domain

import "math"

// AirQualityIndex is the OpenWeatherMap air quality index, 1 (Good) to 5 (Very Poor)
type AirQualityIndex int

const (
	AQIGood AirQualityIndex = iota + 1
	AQIFair
	AQIModerate
	AQIPoor
	AQIVeryPoor
)

// AQIUnknownLabel is returned for any index outside 1..5
const AQIUnknownLabel = "Unknown"

var aqiLabels = map[AirQualityIndex]string{
	AQIGood:     "Good",
	AQIFair:     "Fair",
	AQIModerate: "Moderate",
	AQIPoor:     "Poor",
	AQIVeryPoor: "Very Poor",
}

// Label returns the human-readable name of the index
func (a AirQualityIndex) Label() string {
	if label, ok := aqiLabels[a]; ok {
		return label
	}
	return AQIUnknownLabel
}

// Valid reports whether the index is within 1..5
func (a AirQualityIndex) Valid() bool {
	return a >= AQIGood && a <= AQIVeryPoor
}

// DescribeAQI maps any numeric index to its label. Non-integral, NaN and
// infinite inputs are Unknown.
func DescribeAQI(index float64) string {
	if math.IsNaN(index) || math.IsInf(index, 0) || index != math.Trunc(index) {
		return AQIUnknownLabel
	}
	if index < float64(AQIGood) || index > float64(AQIVeryPoor) {
		return AQIUnknownLabel
	}
	return AirQualityIndex(index).Label()
}
