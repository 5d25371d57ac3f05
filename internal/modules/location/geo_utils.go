// README: Great-circle distance and nearest-first ordering of records.
package location

import (
	"math"
	"sort"

	"wayfarer/internal/types"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between a and b.
func HaversineKm(a, b types.Point) float64 {
	rad := math.Pi / 180
	lat1, lat2 := a.Lat*rad, b.Lat*rad
	sinLat := math.Sin((lat2 - lat1) / 2)
	sinLng := math.Sin((b.Lng - a.Lng) * rad / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// sortNearest orders recs by distance from center, nearest first. Ties keep
// their input order.
func sortNearest(recs []Record, center types.Point) {
	dist := make([]float64, len(recs))
	idx := make([]int, len(recs))
	for i, rec := range recs {
		dist[i] = HaversineKm(center, rec.Point())
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return dist[idx[a]] < dist[idx[b]] })

	sorted := make([]Record, len(recs))
	for i, j := range idx {
		sorted[i] = recs[j]
	}
	copy(recs, sorted)
}
