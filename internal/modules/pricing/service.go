// README: Pricing computes trip cost estimates from itinerary activities and route length.
package pricing

import (
	"math"

	"wayfarer/internal/ai"
	"wayfarer/internal/types"
)

// RateFor returns the tariff for budget, falling back to medium.
func RateFor(budget string) Rate {
	if r, ok := rates[ai.NormalizeBudget(budget)]; ok {
		return r
	}
	return rates["medium"]
}

// EstimateTrip adds activity costs per day, daily transit and a per-km charge
// for the route. Activities in a currency other than the rate's are counted
// in Unpriced and left out of the totals.
func EstimateTrip(budget string, days []ai.DayPlan, routeKm float64) Estimate {
	rate := RateFor(budget)
	money := func(n int64) types.Money { return types.Money{Amount: n, Currency: rate.Currency} }

	est := Estimate{Budget: rate.Budget, PerDay: make([]types.Money, len(days))}
	var activities int64
	for i, d := range days {
		var day int64
		for _, a := range d.Activities {
			if a.Cost.Currency != "" && a.Cost.Currency != rate.Currency {
				est.Unpriced++
				continue
			}
			day += a.Cost.Amount
		}
		activities += day
		est.PerDay[i] = money(day + rate.DailyTransit)
	}

	if routeKm < 0 || math.IsNaN(routeKm) {
		routeKm = 0
	}
	transport := rate.DailyTransit*int64(len(days)) + int64(math.Round(routeKm*rate.PerKm))

	est.Activities = money(activities)
	est.Transport = money(transport)
	est.Total = money(activities + transport)
	return est
}
