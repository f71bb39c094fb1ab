package metrics

import "math"

// CapacityResult holds ideal throughput and how much of it is used.
type CapacityResult struct {
	IdealDailyCapacity   int     `json:"ideal_daily_capacity"`
	IdealMonthlyCapacity int     `json:"ideal_monthly_capacity"`
	UtilizationPercent   float64 `json:"utilization_percentage"`
	IdleHoursPerDay      float64 `json:"idle_hours_per_day"`
}

// Capacity derives ideal service capacity and utilization for the grooming team.
func Capacity(in Input, h HoursResult, a Assumptions) (CapacityResult, []Fallback) {
	var fallbacks []Fallback

	duration := float64(max(a.MinServiceMinutes, in.ServiceMinutes))
	staff := float64(max(1, in.GroomingStaff))
	daily := math.Max(1, h.DailyHours)
	days := math.Max(1, h.WorkingDays)

	// services/day a single groomer can complete
	perEmployee := (daily * 60 * a.ProductivityFactor) / duration

	idealDaily := int(math.Floor(perEmployee * staff))
	idealMonthly := int(math.Floor(float64(idealDaily) * days))

	services := float64(max(0, in.MonthlyServices))

	utilization := 0.0
	if idealMonthly > 0 {
		utilization = services / float64(idealMonthly) * 100
	} else {
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackZeroCapacity,
			Field:   "ideal_monthly_capacity",
			Message: "ideal monthly capacity is zero, utilization reported as 0",
		})
	}

	actualHours := (services / days) * duration / 60
	potentialHours := daily * staff * a.ProductivityFactor

	return CapacityResult{
		IdealDailyCapacity:   idealDaily,
		IdealMonthlyCapacity: idealMonthly,
		UtilizationPercent:   utilization,
		IdleHoursPerDay:      math.Max(0, potentialHours-actualHours),
	}, fallbacks
}
