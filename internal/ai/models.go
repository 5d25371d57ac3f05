package ai

import (
	"errors"
	"time"

	"wayfarer/internal/types"
)

var (
	// ErrMalformedOutput marks a model response that could not be turned into the
	// expected shape. Sampling models may succeed on a retry.
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrPermanent marks a failure that will not go away by retrying
	// (bad credentials, rejected request).
	ErrPermanent = errors.New("permanent model failure")
)

// CategoryScore is the affinity of a query to one travel category.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Embedding is a preference vector plus the travel categories it leans towards,
// strongest first.
type Embedding struct {
	Vector     []float64       `json:"vector"`
	Categories []CategoryScore `json:"categories,omitempty"`
	Source     string          `json:"source"`
}

// TopCategories returns up to n category names in descending score order.
func (e Embedding) TopCategories(n int) []string {
	out := make([]string, 0, n)
	for _, c := range e.Categories {
		if len(out) == n {
			break
		}
		out = append(out, c.Category)
	}
	return out
}

// ItineraryRequest is the generator input: the embedding and the number of days.
// Destination, Budget and StartDate are optional hints.
type ItineraryRequest struct {
	Preferences Embedding
	Days        int
	Destination string
	Budget      string
	StartDate   time.Time
}

type Activity struct {
	Time        string      `json:"time"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category,omitempty"`
	Duration    string      `json:"duration"`
	Cost        types.Money `json:"cost"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Date       *time.Time `json:"date,omitempty"`
	Theme      string     `json:"theme,omitempty"`
	Activities []Activity `json:"activities"`
}

type Itinerary struct {
	Days []DayPlan `json:"days"`
}

// Clone returns a deep copy.
func (it *Itinerary) Clone() *Itinerary {
	if it == nil {
		return nil
	}
	out := &Itinerary{Days: make([]DayPlan, len(it.Days))}
	for i, d := range it.Days {
		out.Days[i] = d.Clone()
	}
	return out
}

// Clone returns a deep copy.
func (d DayPlan) Clone() DayPlan {
	c := d
	if d.Date != nil {
		t := *d.Date
		c.Date = &t
	}
	if d.Activities != nil {
		c.Activities = append([]Activity(nil), d.Activities...)
	}
	return c
}
