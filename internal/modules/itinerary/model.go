// README: Saved itineraries. A plan belongs to the user who saved it.
package itinerary

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"wayfarer/internal/service"
)

// ErrNotFound covers both missing plans and plans owned by someone else.
var ErrNotFound = errors.New("itinerary not found")

type Saved struct {
	ID          uuid.UUID           `json:"id"`
	UserID      string              `json:"user_id"`
	Title       string              `json:"title"`
	Destination string              `json:"destination,omitempty"`
	Days        int                 `json:"days"`
	Plan        *service.TravelPlan `json:"plan"`
	CreatedAt   time.Time           `json:"created_at"`
}

// Summary is the list view of a saved plan.
type Summary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination,omitempty"`
	Days        int       `json:"days"`
	CreatedAt   time.Time `json:"created_at"`
}
