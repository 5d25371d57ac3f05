// README: Route optimisation types. The result vector is opaque to callers.
package route

import (
	"errors"

	"wayfarer/internal/types"
)

// VectorLength is the fixed size of Result.Vector.
const VectorLength = 16

var ErrEmptyTable = errors.New("no locations to route")

// Constraints steer stop selection. Preferences are category tags;
// MaxStops <= 0 keeps every location.
type Constraints struct {
	Preferences []string
	MaxStops    int
}

type Stop struct {
	Position   int         `json:"position"`
	Row        int         `json:"row"`
	LocationID string      `json:"location_id"`
	Name       string      `json:"name"`
	Point      types.Point `json:"point"`
	Categories []string    `json:"categories,omitempty"`
	Score      float64     `json:"score"`
	LegKm      float64     `json:"leg_km"`
}

// Result is the optimized route. Order holds table row indices in visit order.
type Result struct {
	Vector          []float64 `json:"vector"`
	Order           []int     `json:"order"`
	Stops           []Stop    `json:"stops"`
	TotalDistanceKm float64   `json:"total_distance_km"`
}

// Clone returns a deep copy.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := &Result{
		Vector:          append([]float64(nil), r.Vector...),
		Order:           append([]int(nil), r.Order...),
		TotalDistanceKm: r.TotalDistanceKm,
	}
	if r.Stops != nil {
		c.Stops = make([]Stop, len(r.Stops))
		for i, s := range r.Stops {
			s.Categories = append([]string(nil), s.Categories...)
			c.Stops[i] = s
		}
	}
	return c
}
