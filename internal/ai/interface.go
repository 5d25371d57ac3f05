package ai

import (
	"context"
)

// PreferenceExtractor turns a free-text travel query into a fixed-length embedding.
// Implementations must be safe for concurrent use; model handles are loaded once
// at construction and only read afterwards.
type PreferenceExtractor interface {
	Extract(ctx context.Context, text string) (Embedding, error)

	// Dimension is the length of every vector returned by Extract.
	Dimension() int
}

// ItineraryGenerator produces a day-by-day plan from a preference embedding.
// The returned itinerary must contain exactly req.Days entries.
type ItineraryGenerator interface {
	Generate(ctx context.Context, req ItineraryRequest) (*Itinerary, error)
}
