// README: Common money value object used for activity cost estimates.
package types

import "fmt"

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// String renders the amount the way trip cards show it, e.g. "EUR 40".
func (m Money) String() string {
	if m.Currency == "" {
		return fmt.Sprintf("%d", m.Amount)
	}
	return fmt.Sprintf("%s %d", m.Currency, m.Amount)
}
