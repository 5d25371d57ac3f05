package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"wayfarer/internal/types"
)

// Distance Matrix per-request caps: elements, and origins or destinations.
const (
	maxElements  = 100
	maxDimension = 25
)

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
	mode   maps.Mode
}

func NewRouteService(client *maps.Client) *RouteService {
	return &RouteService{client: client, mode: maps.TravelModeDriving}
}

// Distances returns the driving distance in kilometres between every pair of
// points. Unreachable pairs are reported as an error.
func (s *RouteService) Distances(ctx context.Context, points []types.Point) ([][]float64, error) {
	n := len(points)
	out := make([][]float64, n)
	if n == 0 {
		return out, nil
	}

	coords := make([]string, n)
	for i, p := range points {
		coords[i] = p.LatLng()
	}

	// Tile the n x n matrix into requests within both caps.
	colsPerCall := min(n, maxDimension)
	rowsPerCall := min(maxElements/colsPerCall, maxDimension)

	for i := range out {
		out[i] = make([]float64, n)
	}
	for r0 := 0; r0 < n; r0 += rowsPerCall {
		r1 := min(r0+rowsPerCall, n)
		for c0 := 0; c0 < n; c0 += colsPerCall {
			c1 := min(c0+colsPerCall, n)
			if err := s.fillTile(ctx, coords, out, r0, r1, c0, c1); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (s *RouteService) fillTile(ctx context.Context, coords []string, out [][]float64, r0, r1, c0, c1 int) error {
	resp, err := s.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      coords[r0:r1],
		Destinations: coords[c0:c1],
		Mode:         s.mode,
	})
	if err != nil {
		return fmt.Errorf("maps api error: %w", classify(err))
	}
	if len(resp.Rows) != r1-r0 {
		return fmt.Errorf("distance matrix: expected %d rows, got %d", r1-r0, len(resp.Rows))
	}
	for i, row := range resp.Rows {
		if len(row.Elements) != c1-c0 {
			return fmt.Errorf("distance matrix: row %d has %d elements, want %d", r0+i, len(row.Elements), c1-c0)
		}
		for j, el := range row.Elements {
			from, to := r0+i, c0+j
			if from == to {
				continue
			}
			if el.Status != "OK" {
				return fmt.Errorf("no route from %s to %s: %s", coords[from], coords[to], el.Status)
			}
			out[from][to] = float64(el.Distance.Meters) / 1000
		}
	}
	return nil
}
