package metrics

// monthsPerYear annualizes monthly revenue figures.
const monthsPerYear = 12

// Assumptions holds every business threshold and fallback value used by the
// metrics pipeline. None of these figures come from a cited source; they are
// kept in one table so they can be overridden per Analyzer instead of drifting
// between stages.
//
// A zero field means "use the default": NewAnalyzer and the stages fill it from
// DefaultAssumptions, so no threshold can be overridden to exactly 0. Use a
// small positive value where a near-zero threshold is wanted.
type Assumptions struct {
	// ProductivityFactor is the share of scheduled time that is billable.
	ProductivityFactor float64 `json:"productivity_factor" yaml:"productivity_factor"`

	// Working days are BaselineWorkingDays scaled by days-per-week over
	// BaselineDaysPerWeek, never below MinWorkingDays.
	BaselineWorkingDays float64 `json:"baseline_working_days" yaml:"baseline_working_days"`
	BaselineDaysPerWeek float64 `json:"baseline_days_per_week" yaml:"baseline_days_per_week"`
	MinWorkingDays      float64 `json:"min_working_days" yaml:"min_working_days"`
	DefaultDaysPerWeek  int     `json:"default_days_per_week" yaml:"default_days_per_week"`

	DefaultOpening string `json:"default_opening" yaml:"default_opening"`
	DefaultClosing string `json:"default_closing" yaml:"default_closing"`
	LatestClosing  string `json:"latest_closing" yaml:"latest_closing"`

	// A day shorter than MinDailyHours is replaced with ShortDayHours.
	MinDailyHours float64 `json:"min_daily_hours" yaml:"min_daily_hours"`
	ShortDayHours float64 `json:"short_day_hours" yaml:"short_day_hours"`

	// Returned as-is when the schedule cannot be parsed at all.
	FallbackDailyHours   float64 `json:"fallback_daily_hours" yaml:"fallback_daily_hours"`
	FallbackMonthlyHours float64 `json:"fallback_monthly_hours" yaml:"fallback_monthly_hours"`
	FallbackWorkingDays  float64 `json:"fallback_working_days" yaml:"fallback_working_days"`

	MinServiceMinutes int `json:"min_service_minutes" yaml:"min_service_minutes"`

	// CapacityFloor replaces a zero ideal monthly capacity when projecting revenue.
	CapacityFloor int `json:"capacity_floor" yaml:"capacity_floor"`

	DefaultRevenue         float64 `json:"default_revenue" yaml:"default_revenue"`
	DefaultPrice           float64 `json:"default_price" yaml:"default_price"`
	DefaultSuppliesPercent float64 `json:"default_supplies_percent" yaml:"default_supplies_percent"`

	// Cost-structure shares reported when total expense is zero.
	FallbackPersonnelShare float64 `json:"fallback_personnel_share" yaml:"fallback_personnel_share"`
	FallbackSuppliesShare  float64 `json:"fallback_supplies_share" yaml:"fallback_supplies_share"`
	FallbackRentShare      float64 `json:"fallback_rent_share" yaml:"fallback_rent_share"`
}

// DefaultAssumptions returns the standard threshold table.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		ProductivityFactor:     0.85,
		BaselineWorkingDays:    22,
		BaselineDaysPerWeek:    5,
		MinWorkingDays:         20,
		DefaultDaysPerWeek:     5,
		DefaultOpening:         "08:00",
		DefaultClosing:         "18:00",
		LatestClosing:          "23:59",
		MinDailyHours:          1,
		ShortDayHours:          6,
		FallbackDailyHours:     8,
		FallbackMonthlyHours:   176,
		FallbackWorkingDays:    22,
		MinServiceMinutes:      30,
		CapacityFloor:          200,
		DefaultRevenue:         18000,
		DefaultPrice:           90,
		DefaultSuppliesPercent: 20,
		FallbackPersonnelShare: 60,
		FallbackSuppliesShare:  20,
		FallbackRentShare:      15,
	}
}

// withDefaults fills every zero field from DefaultAssumptions, so a partially
// populated table only overrides what it sets.
func (a Assumptions) withDefaults() Assumptions {
	d := DefaultAssumptions()
	setFloat := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	setInt := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}
	setString := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}

	setFloat(&a.ProductivityFactor, d.ProductivityFactor)
	setFloat(&a.BaselineWorkingDays, d.BaselineWorkingDays)
	setFloat(&a.BaselineDaysPerWeek, d.BaselineDaysPerWeek)
	setFloat(&a.MinWorkingDays, d.MinWorkingDays)
	setInt(&a.DefaultDaysPerWeek, d.DefaultDaysPerWeek)
	setString(&a.DefaultOpening, d.DefaultOpening)
	setString(&a.DefaultClosing, d.DefaultClosing)
	setString(&a.LatestClosing, d.LatestClosing)
	setFloat(&a.MinDailyHours, d.MinDailyHours)
	setFloat(&a.ShortDayHours, d.ShortDayHours)
	setFloat(&a.FallbackDailyHours, d.FallbackDailyHours)
	setFloat(&a.FallbackMonthlyHours, d.FallbackMonthlyHours)
	setFloat(&a.FallbackWorkingDays, d.FallbackWorkingDays)
	setInt(&a.MinServiceMinutes, d.MinServiceMinutes)
	setInt(&a.CapacityFloor, d.CapacityFloor)
	setFloat(&a.DefaultRevenue, d.DefaultRevenue)
	setFloat(&a.DefaultPrice, d.DefaultPrice)
	setFloat(&a.DefaultSuppliesPercent, d.DefaultSuppliesPercent)
	setFloat(&a.FallbackPersonnelShare, d.FallbackPersonnelShare)
	setFloat(&a.FallbackSuppliesShare, d.FallbackSuppliesShare)
	setFloat(&a.FallbackRentShare, d.FallbackRentShare)

	return a
}
