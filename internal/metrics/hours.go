package metrics

import (
	"fmt"
	"math"
	"time"
)

const clockLayout = "15:04"

// HoursResult holds the operating schedule derived from opening hours.
type HoursResult struct {
	DailyHours   float64 `json:"daily_hours"`
	MonthlyHours float64 `json:"monthly_hours"`
	WorkingDays  float64 `json:"working_days"`
}

// WorkingHours derives daily and monthly operating hours from the schedule.
// It never fails: malformed times fall back to the default schedule and an
// unparseable clock value yields the fixed fallback result.
func WorkingHours(opening, closing string, daysPerWeek int, a Assumptions) (HoursResult, []Fallback) {
	var fallbacks []Fallback

	if !clockFormat.MatchString(opening) {
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackOpeningTime,
			Field:   "opening_time",
			Message: fmt.Sprintf("invalid opening time %q, using %s", opening, a.DefaultOpening),
		})
		opening = a.DefaultOpening
	}
	if !clockFormat.MatchString(closing) {
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackClosingTime,
			Field:   "closing_time",
			Message: fmt.Sprintf("invalid closing time %q, using %s", closing, a.DefaultClosing),
		})
		closing = a.DefaultClosing
	}

	openAt, err := time.Parse(clockLayout, opening)
	if err != nil {
		return a.fallbackHours(), append(fallbacks, hoursParseFallback(err))
	}
	closeAt, err := time.Parse(clockLayout, closing)
	if err != nil {
		return a.fallbackHours(), append(fallbacks, hoursParseFallback(err))
	}

	// Schedules that wrap past midnight are cut at the latest closing time.
	if closeAt.Before(openAt) {
		closeAt, err = time.Parse(clockLayout, a.LatestClosing)
		if err != nil {
			return a.fallbackHours(), append(fallbacks, hoursParseFallback(err))
		}
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackClosingClamped,
			Field:   "closing_time",
			Message: fmt.Sprintf("closing time before opening time, using %s", a.LatestClosing),
		})
	}

	daily := closeAt.Sub(openAt).Hours()
	if daily < a.MinDailyHours {
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackShortDay,
			Field:   "closing_time",
			Message: fmt.Sprintf("daily operating hours %.2f below minimum, using %.0f", daily, a.ShortDayHours),
		})
		daily = a.ShortDayHours
	}

	days := daysPerWeek
	if days == 0 {
		days = a.DefaultDaysPerWeek
	}
	days = max(1, min(7, days))
	if days != daysPerWeek {
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackDaysPerWeek,
			Field:   "days_per_week",
			Message: fmt.Sprintf("days per week %d out of range, using %d", daysPerWeek, days),
		})
	}

	workingDays := math.Max(a.MinWorkingDays, a.BaselineWorkingDays*(float64(days)/a.BaselineDaysPerWeek))

	return HoursResult{
		DailyHours:   daily,
		MonthlyHours: daily * workingDays,
		WorkingDays:  workingDays,
	}, fallbacks
}

func (a Assumptions) fallbackHours() HoursResult {
	return HoursResult{
		DailyHours:   a.FallbackDailyHours,
		MonthlyHours: a.FallbackMonthlyHours,
		WorkingDays:  a.FallbackWorkingDays,
	}
}

func hoursParseFallback(err error) Fallback {
	return Fallback{
		Code:    FallbackDefaultHours,
		Field:   "opening_time",
		Message: fmt.Sprintf("parse schedule: %v; using default hours", err),
	}
}
