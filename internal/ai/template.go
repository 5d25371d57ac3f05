package ai

import (
	"context"
	"fmt"
	"strings"

	"wayfarer/internal/types"
)

type slot struct {
	label    string
	time     string
	duration string
	lead     string
}

var daySlots = []slot{
	{label: "Morning", time: "09:00", duration: "2 hours", lead: "Start your day with"},
	{label: "Afternoon", time: "12:00", duration: "3 hours", lead: "Spend the afternoon on"},
	{label: "Evening", time: "16:00", duration: "2 hours", lead: "Wind down with"},
}

// slotCosts is the per-slot price in EUR for each budget tier.
var slotCosts = map[string][3]int64{
	"low":    {20, 30, 25},
	"medium": {40, 50, 45},
	"high":   {60, 70, 65},
}

const defaultCurrency = "EUR"

// NormalizeBudget maps free-form budget input onto low, medium or high.
// Unknown values fall back to medium.
func NormalizeBudget(b string) string {
	b = strings.ToLower(strings.TrimSpace(b))
	if _, ok := slotCosts[b]; ok {
		return b
	}
	return "medium"
}

// TemplateGenerator builds itineraries without a model: three priced slots per
// day, themed by the strongest categories of the embedding. Output is
// deterministic for a given request.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator { return &TemplateGenerator{} }

func (TemplateGenerator) Generate(ctx context.Context, req ItineraryRequest) (*Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Days < 1 {
		return nil, fmt.Errorf("days must be positive, got %d: %w", req.Days, ErrPermanent)
	}

	cats := req.Preferences.TopCategories(3)
	costs := slotCosts[NormalizeBudget(req.Budget)]

	it := &Itinerary{Days: make([]DayPlan, 0, req.Days)}
	for d := 0; d < req.Days; d++ {
		day := DayPlan{Day: d + 1}
		if !req.StartDate.IsZero() {
			date := req.StartDate.AddDate(0, 0, d)
			day.Date = &date
		}
		if len(cats) > 0 {
			day.Theme = title(cats[d%len(cats)])
		} else {
			day.Theme = "Sightseeing"
		}

		for i, s := range daySlots {
			act := Activity{
				Time:     s.time,
				Duration: s.duration,
				Cost:     types.Money{Amount: costs[i], Currency: defaultCurrency},
			}
			if len(cats) == 0 {
				act.Name = s.label + " Sightseeing"
				act.Description = s.lead + " a walk around the main sights"
			} else {
				cat := cats[(d+i)%len(cats)]
				kws := CategoryKeywords[cat]
				kw := kws[(d+i/len(cats))%len(kws)]
				act.Category = cat
				act.Name = s.label + " " + title(kw)
				act.Description = s.lead + " " + kw
			}
			if req.Destination != "" {
				act.Description += " in " + req.Destination
			}
			day.Activities = append(day.Activities, act)
		}
		it.Days = append(it.Days, day)
	}
	return it, nil
}

func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
