package metrics

// Fallback codes recorded when a stage substitutes a value for degenerate input.
const (
	FallbackOpeningTime     = "default_opening_time"
	FallbackClosingTime     = "default_closing_time"
	FallbackClosingClamped  = "closing_clamped"
	FallbackShortDay        = "short_day"
	FallbackDaysPerWeek     = "days_per_week_clamped"
	FallbackDefaultHours    = "default_hours"
	FallbackZeroCapacity    = "zero_capacity"
	FallbackDefaultRevenue  = "default_revenue"
	FallbackDefaultPrice    = "default_price"
	FallbackSuppliesPercent = "default_supplies_percent"
	FallbackCostShares      = "default_cost_shares"
	FallbackZeroMargin      = "zero_contribution_margin"
)

// Fallback records one substitution so presentation layers can call it out.
type Fallback struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Has reports whether fallbacks contains code.
func Has(fallbacks []Fallback, code string) bool {
	for _, f := range fallbacks {
		if f.Code == code {
			return true
		}
	}
	return false
}
