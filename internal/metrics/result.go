package metrics

import (
	"errors"
	"fmt"
	"math"
)

// ErrIncompleteResult signals that an upstream stage produced an unusable value.
// It indicates a programming error, not bad input.
var ErrIncompleteResult = errors.New("incomplete analysis result")

// Result is the flat analysis output consumed by the dashboard, chart, report
// and notification layers. It is created once by Aggregate and must be treated
// as read-only; pointer and slice fields are never shared with the stages.
type Result struct {
	BusinessName string `json:"business_name"`

	CurrentRevenue         float64 `json:"current_revenue"`
	PotentialRevenue       float64 `json:"potential_revenue"`
	UnrealizedRevenue      float64 `json:"unrealized_revenue"`
	UtilizationPercent     float64 `json:"utilization_percentage"`
	AnnualCurrentRevenue   float64 `json:"annual_current_revenue"`
	AnnualPotentialRevenue float64 `json:"annual_potential_revenue"`

	DailyHours           float64 `json:"daily_hours"`
	MonthlyHours         float64 `json:"monthly_hours"`
	WorkingDays          float64 `json:"working_days"`
	IdealDailyCapacity   int     `json:"ideal_daily_capacity"`
	IdealMonthlyCapacity int     `json:"ideal_monthly_capacity"`
	CurrentServices      int     `json:"current_services"`
	IdleHoursPerDay      float64 `json:"idle_hours_per_day"`

	TotalExpense     float64 `json:"total_expense"`
	PersonnelExpense float64 `json:"personnel_expense"`
	CurrentProfit    float64 `json:"current_profit"`
	PotentialProfit  float64 `json:"potential_profit"`
	ProfitMargin     float64 `json:"profit_margin"`

	ServicesPerEmployee          float64 `json:"services_per_employee"`
	PotentialServicesPerEmployee float64 `json:"potential_services_per_employee"`
	RevenuePerEmployee           float64 `json:"revenue_per_employee"`
	PotentialRevenuePerEmployee  float64 `json:"potential_revenue_per_employee"`
	AveragePrice                 float64 `json:"average_price"`

	PersonnelShare  float64 `json:"personnel_share"`
	SuppliesShare   float64 `json:"supplies_share"`
	RentShare       float64 `json:"rent_share"`
	FixedCost       float64 `json:"fixed_cost"`
	VariableCost    float64 `json:"variable_cost"`
	SuppliesPercent float64 `json:"supplies_percent"`

	BreakEvenServices int      `json:"break_even_services"`
	RevenueGrowth     *float64 `json:"revenue_growth"`
	ProfitGoalDelta   *float64 `json:"profit_goal_delta"`
	RevenueGoalDelta  *float64 `json:"revenue_goal_delta"`

	Fallbacks   []Fallback  `json:"fallbacks"`
	Assumptions Assumptions `json:"assumptions"`
}

// Aggregate assembles the stage outputs into one Result, annualizing revenue.
func Aggregate(in Input, h HoursResult, c CapacityResult, f FinancialResult, a Assumptions, fallbacks []Fallback) (Result, error) {
	if h.WorkingDays <= 0 {
		return Result{}, fmt.Errorf("%w: working days %v", ErrIncompleteResult, h.WorkingDays)
	}
	if name, ok := firstNonFinite([]namedValue{
		{"daily_hours", h.DailyHours},
		{"monthly_hours", h.MonthlyHours},
		{"working_days", h.WorkingDays},
		{"utilization_percentage", c.UtilizationPercent},
		{"idle_hours_per_day", c.IdleHoursPerDay},
		{"current_revenue", f.EffectiveRevenue},
		{"total_expense", f.TotalExpense},
		{"personnel_expense", f.PersonnelExpense},
		{"potential_revenue", f.PotentialRevenue},
		{"unrealized_revenue", f.UnrealizedRevenue},
		{"current_profit", f.CurrentProfit},
		{"potential_profit", f.PotentialProfit},
		{"profit_margin", f.ProfitMargin},
		{"personnel_share", f.PersonnelShare},
		{"supplies_share", f.SuppliesShare},
		{"rent_share", f.RentShare},
		{"fixed_cost", f.FixedCost},
		{"variable_cost", f.VariableCost},
		{"services_per_employee", f.ServicesPerEmployee},
		{"potential_services_per_employee", f.PotentialServicesPerEmployee},
		{"revenue_per_employee", f.RevenuePerEmployee},
		{"potential_revenue_per_employee", f.PotentialRevenuePerEmployee},
	}); !ok {
		return Result{}, fmt.Errorf("%w: %s is not finite", ErrIncompleteResult, name)
	}

	copied := make([]Fallback, len(fallbacks))
	copy(copied, fallbacks)

	return Result{
		BusinessName: in.BusinessName,

		CurrentRevenue:         f.EffectiveRevenue,
		PotentialRevenue:       f.PotentialRevenue,
		UnrealizedRevenue:      f.UnrealizedRevenue,
		UtilizationPercent:     c.UtilizationPercent,
		AnnualCurrentRevenue:   f.EffectiveRevenue * monthsPerYear,
		AnnualPotentialRevenue: f.PotentialRevenue * monthsPerYear,

		DailyHours:           h.DailyHours,
		MonthlyHours:         h.MonthlyHours,
		WorkingDays:          h.WorkingDays,
		IdealDailyCapacity:   c.IdealDailyCapacity,
		IdealMonthlyCapacity: c.IdealMonthlyCapacity,
		CurrentServices:      in.MonthlyServices,
		IdleHoursPerDay:      c.IdleHoursPerDay,

		TotalExpense:     f.TotalExpense,
		PersonnelExpense: f.PersonnelExpense,
		CurrentProfit:    f.CurrentProfit,
		PotentialProfit:  f.PotentialProfit,
		ProfitMargin:     f.ProfitMargin,

		ServicesPerEmployee:          f.ServicesPerEmployee,
		PotentialServicesPerEmployee: f.PotentialServicesPerEmployee,
		RevenuePerEmployee:           f.RevenuePerEmployee,
		PotentialRevenuePerEmployee:  f.PotentialRevenuePerEmployee,
		AveragePrice:                 f.AveragePrice,

		PersonnelShare:  f.PersonnelShare,
		SuppliesShare:   f.SuppliesShare,
		RentShare:       f.RentShare,
		FixedCost:       f.FixedCost,
		VariableCost:    f.VariableCost,
		SuppliesPercent: f.SuppliesPercent,

		BreakEvenServices: f.BreakEvenServices,
		RevenueGrowth:     cloneFloat(f.RevenueGrowth),
		ProfitGoalDelta:   cloneFloat(f.ProfitGoalDelta),
		RevenueGoalDelta:  cloneFloat(f.RevenueGoalDelta),

		Fallbacks:   copied,
		Assumptions: a,
	}, nil
}

type namedValue struct {
	name  string
	value float64
}

// firstNonFinite returns the name of the first NaN or infinite value.
func firstNonFinite(values []namedValue) (string, bool) {
	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return v.name, false
		}
	}
	return "", true
}
