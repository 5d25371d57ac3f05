package quota

import "errors"

// ErrInsufficientTokens is returned when a user has no plans left for the current month.
var ErrInsufficientTokens = errors.New("monthly plan quota exhausted")

// DefaultMonthlyPlans is the allowance used when none is configured.
const DefaultMonthlyPlans = 100
