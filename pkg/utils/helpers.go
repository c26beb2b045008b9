package utils

import (
	"math"
)

var compassPoints = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassDirection converts a meteorological wind direction in degrees to a
// 16-point compass label. Any finite angle is accepted; NaN and Inf yield "".
func CompassDirection(deg float64) string {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return ""
	}
	deg = NormalizeDegrees(deg)
	idx := int(math.Floor(deg/22.5+0.5)) % len(compassPoints)
	return compassPoints[idx]
}

// NormalizeDegrees maps any angle into [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
