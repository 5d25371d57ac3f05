package service

import (
	"fmt"
	"strings"
	"time"

	"wayfarer/internal/ai"
	"wayfarer/internal/modules/pricing"
	"wayfarer/internal/modules/route"
)

// Query is one plan request. Text, Days and Preferences are required input;
// the rest are optional hints.
type Query struct {
	Text        string    `json:"text"`
	Days        int       `json:"days"`
	Preferences []string  `json:"preferences"`
	Destination string    `json:"destination,omitempty"`
	Budget      string    `json:"budget,omitempty"`
	StartDate   time.Time `json:"start_date"`
	TravelWith  string    `json:"travel_with,omitempty"`
}

// normalize validates q and returns a copy with trimmed text, lower-cased
// unique preferences and a known budget tier.
func (q Query) normalize() (Query, error) {
	out := q
	out.Text = strings.TrimSpace(q.Text)
	if out.Text == "" {
		return Query{}, fmt.Errorf("%w: query text is empty", ErrInvalidInput)
	}
	if q.Days <= 0 {
		return Query{}, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidInput, q.Days)
	}

	seen := make(map[string]bool, len(q.Preferences))
	out.Preferences = make([]string, 0, len(q.Preferences))
	for _, p := range q.Preferences {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out.Preferences = append(out.Preferences, p)
	}
	out.Destination = strings.TrimSpace(q.Destination)
	out.Budget = ai.NormalizeBudget(q.Budget)
	out.TravelWith = strings.TrimSpace(q.TravelWith)
	return out, nil
}

// TravelPlan is the assembled response.
type TravelPlan struct {
	Request     Query              `json:"request"`
	Preferences []ai.CategoryScore `json:"preferences,omitempty"`
	Days        []ai.DayPlan       `json:"days"`
	Route       *route.Result      `json:"route"`
	Cost        *pricing.Estimate  `json:"cost,omitempty"`
}

// QueryAnalysis is the preference profile of one query.
type QueryAnalysis struct {
	Text       string             `json:"text"`
	Categories []ai.CategoryScore `json:"categories"`
	Vector     []float64          `json:"-"`
}

// Analysis holds per-query profiles and their pairwise cosine similarity.
type Analysis struct {
	Queries    []QueryAnalysis `json:"queries"`
	Similarity [][]float64     `json:"similarity"`
}
