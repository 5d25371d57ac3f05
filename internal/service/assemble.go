package service

import (
	"wayfarer/internal/ai"
	"wayfarer/internal/modules/route"
)

// Assemble combines an itinerary and a route into a plan. It copies both
// inputs, so later changes to either side do not leak into the plan.
func Assemble(it *ai.Itinerary, r *route.Result) *TravelPlan {
	plan := &TravelPlan{Route: r.Clone()}
	if it != nil {
		plan.Days = it.Clone().Days
	}
	return plan
}
