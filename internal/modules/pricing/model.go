// README: Per-budget transport rates and the trip cost estimate.
package pricing

import "wayfarer/internal/types"

// Rate is the local transport tariff of a budget tier.
type Rate struct {
	Budget       string
	DailyTransit int64   // passes, tickets
	PerKm        float64 // taxis and transfers along the route
	Currency     string
}

var rates = map[string]Rate{
	"low":    {Budget: "low", DailyTransit: 8, PerKm: 0.25, Currency: "EUR"},
	"medium": {Budget: "medium", DailyTransit: 15, PerKm: 0.6, Currency: "EUR"},
	"high":   {Budget: "high", DailyTransit: 40, PerKm: 1.5, Currency: "EUR"},
}

// Estimate is the expected spend of a plan, excluding lodging.
type Estimate struct {
	Budget     string        `json:"budget"`
	Activities types.Money   `json:"activities"`
	Transport  types.Money   `json:"transport"`
	Total      types.Money   `json:"total"`
	PerDay     []types.Money `json:"per_day"`
	// Unpriced counts activities quoted in another currency.
	Unpriced int `json:"unpriced,omitempty"`
}
