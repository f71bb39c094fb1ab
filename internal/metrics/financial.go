package metrics

import (
	"fmt"
	"math"
)

// FinancialResult holds revenue, cost, profit and efficiency figures for one month.
type FinancialResult struct {
	EffectiveRevenue  float64 `json:"current_revenue"`
	TotalExpense      float64 `json:"total_expense"`
	PersonnelExpense  float64 `json:"personnel_expense"`
	PotentialRevenue  float64 `json:"potential_revenue"`
	UnrealizedRevenue float64 `json:"unrealized_revenue"`
	CurrentProfit     float64 `json:"current_profit"`
	PotentialProfit   float64 `json:"potential_profit"`
	ProfitMargin      float64 `json:"profit_margin"`
	SuppliesPercent   float64 `json:"supplies_percent"`
	AveragePrice      float64 `json:"average_price"`

	PersonnelShare float64 `json:"personnel_share"`
	SuppliesShare  float64 `json:"supplies_share"`
	RentShare      float64 `json:"rent_share"`
	FixedCost      float64 `json:"fixed_cost"`
	VariableCost   float64 `json:"variable_cost"`

	ServicesPerEmployee          float64 `json:"services_per_employee"`
	PotentialServicesPerEmployee float64 `json:"potential_services_per_employee"`
	RevenuePerEmployee           float64 `json:"revenue_per_employee"`
	PotentialRevenuePerEmployee  float64 `json:"potential_revenue_per_employee"`

	BreakEvenServices int      `json:"break_even_services"`
	RevenueGrowth     *float64 `json:"revenue_growth"`
	ProfitGoalDelta   *float64 `json:"profit_goal_delta"`
	RevenueGoalDelta  *float64 `json:"revenue_goal_delta"`
}

// Financials derives the monthly financial metrics from the input and capacity.
// Every division is guarded; degenerate values are substituted and reported.
func Financials(in Input, c CapacityResult, a Assumptions) (FinancialResult, []Fallback) {
	var fallbacks []Fallback

	revenue := in.MonthlyRevenue
	if revenue <= 0 {
		revenue = a.DefaultRevenue
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackDefaultRevenue,
			Field:   "monthly_revenue",
			Message: fmt.Sprintf("monthly revenue not informed, using default %.2f", a.DefaultRevenue),
		})
	}

	personnel := in.AverageSalary * float64(in.EmployeeCount)
	total := personnel + in.UtilitiesExpense + in.SuppliesExpense + in.RentExpense + in.OtherExpense

	price := in.AveragePrice
	if price <= 0 {
		price = a.DefaultPrice
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackDefaultPrice,
			Field:   "average_price",
			Message: fmt.Sprintf("average price not informed, using default %.2f", a.DefaultPrice),
		})
	}

	capacity := c.IdealMonthlyCapacity
	if capacity <= 0 {
		capacity = a.CapacityFloor
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackZeroCapacity,
			Field:   "potential_revenue",
			Message: fmt.Sprintf("ideal monthly capacity is zero, projecting %d services", a.CapacityFloor),
		})
	}

	potential := float64(capacity) * price
	profit := revenue - total

	margin := 0.0
	if revenue > 0 {
		margin = profit / revenue * 100
	}

	suppliesPct := a.DefaultSuppliesPercent
	if in.SuppliesPercent != nil && *in.SuppliesPercent > 0 {
		suppliesPct = *in.SuppliesPercent
	} else {
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackSuppliesPercent,
			Field:   "supplies_percent",
			Message: fmt.Sprintf("supplies cost share not informed, using %.0f%%", a.DefaultSuppliesPercent),
		})
	}

	// Supplies are treated as the only variable cost.
	fixed := total - in.SuppliesExpense
	potentialProfit := potential - potential*(suppliesPct/100) - fixed

	var personnelShare, suppliesShare, rentShare float64
	if total > 0 {
		personnelShare = personnel / total * 100
		suppliesShare = in.SuppliesExpense / total * 100
		rentShare = in.RentExpense / total * 100
	} else {
		personnelShare = a.FallbackPersonnelShare
		suppliesShare = a.FallbackSuppliesShare
		rentShare = a.FallbackRentShare
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackCostShares,
			Field:   "total_expense",
			Message: "total expense is zero, reporting default cost structure",
		})
	}

	out := FinancialResult{
		EffectiveRevenue:  revenue,
		TotalExpense:      total,
		PersonnelExpense:  personnel,
		PotentialRevenue:  potential,
		UnrealizedRevenue: math.Max(0, potential-revenue),
		CurrentProfit:     profit,
		PotentialProfit:   potentialProfit,
		ProfitMargin:      margin,
		SuppliesPercent:   suppliesPct,
		AveragePrice:      price,
		PersonnelShare:    personnelShare,
		SuppliesShare:     suppliesShare,
		RentShare:         rentShare,
		FixedCost:         fixed,
		VariableCost:      in.SuppliesExpense,
	}

	if staff := float64(in.GroomingStaff); staff > 0 {
		out.ServicesPerEmployee = float64(in.MonthlyServices) / staff
		out.PotentialServicesPerEmployee = float64(capacity) / staff
		out.RevenuePerEmployee = revenue / staff
		out.PotentialRevenuePerEmployee = potential / staff
	}

	unitMargin := price * ((100 - suppliesPct) / 100)
	if unitMargin > 0 {
		out.BreakEvenServices = int(math.Floor(fixed / unitMargin))
	} else {
		fallbacks = append(fallbacks, Fallback{
			Code:    FallbackZeroMargin,
			Field:   "break_even_services",
			Message: "contribution margin per service is zero, break-even not computed",
		})
	}

	if in.PreviousRevenue != nil && *in.PreviousRevenue > 0 {
		growth := (revenue - *in.PreviousRevenue) / *in.PreviousRevenue * 100
		out.RevenueGrowth = &growth
	}
	if in.TargetProfit != nil {
		delta := profit - *in.TargetProfit
		out.ProfitGoalDelta = &delta
	}
	if in.TargetRevenue != nil {
		delta := revenue - *in.TargetRevenue
		out.RevenueGoalDelta = &delta
	}

	return out, fallbacks
}
