// Package geo provides the distance math and proximity ordering used by
// the donation and request feeds.
package geo

import (
	"math"

	"github.com/mealbridge/mealcli/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
const EarthRadiusKm = 6371.0

// Unknown is the sentinel distance returned when either endpoint is
// missing or out of range. It compares greater than any finite distance,
// so items without a location sort last instead of crashing the sort.
var Unknown = math.Inf(1)

// Known reports whether d is a real distance rather than the sentinel.
func Known(d float64) bool {
	return !math.IsInf(d, 1)
}

// Distance returns the great-circle distance in kilometers between two
// coordinates using the Haversine formula. Either coordinate may be nil
// or invalid, in which case Unknown is returned.
func Distance(a, b *models.Coordinate) float64 {
	if a == nil || b == nil || !a.Valid() || !b.Valid() {
		return Unknown
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}
