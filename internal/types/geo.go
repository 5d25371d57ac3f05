// README: Geographic coordinates shared by sources, routes and map clients.
package types

import "fmt"

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LatLng formats the point for APIs that accept "lat,lng" strings.
func (p Point) LatLng() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}
