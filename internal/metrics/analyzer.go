package metrics

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Analyzer runs the metrics pipeline with one set of assumptions.
// It holds no per-run state and may be shared between goroutines.
type Analyzer struct {
	Assumptions Assumptions
	Logger      zerolog.Logger
}

// NewAnalyzer returns an Analyzer; zero fields of a are taken from DefaultAssumptions.
func NewAnalyzer(a Assumptions, logger zerolog.Logger) *Analyzer {
	return &Analyzer{Assumptions: a.withDefaults(), Logger: logger}
}

// Analyze runs the pipeline with the default assumptions and no logging.
func Analyze(in Input) (Result, error) {
	return NewAnalyzer(DefaultAssumptions(), zerolog.Nop()).Analyze(in)
}

// Analyze validates in and derives the full Result:
// working hours, then capacity, then financial metrics, then aggregation.
func (an *Analyzer) Analyze(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	a := an.Assumptions.withDefaults()
	log := an.Logger.With().Str("business", in.BusinessName).Logger()

	hours, hoursFallbacks := WorkingHours(in.OpeningTime, in.ClosingTime, in.DaysPerWeek, a)
	log.Debug().
		Float64("daily_hours", hours.DailyHours).
		Float64("monthly_hours", hours.MonthlyHours).
		Float64("working_days", hours.WorkingDays).
		Msg("working hours calculated")

	capacity, capacityFallbacks := Capacity(in, hours, a)
	log.Debug().
		Int("ideal_daily_capacity", capacity.IdealDailyCapacity).
		Int("ideal_monthly_capacity", capacity.IdealMonthlyCapacity).
		Float64("utilization", capacity.UtilizationPercent).
		Msg("capacity calculated")

	financial, financialFallbacks := Financials(in, capacity, a)
	log.Debug().
		Float64("total_expense", financial.TotalExpense).
		Float64("potential_revenue", financial.PotentialRevenue).
		Float64("current_profit", financial.CurrentProfit).
		Msg("financial metrics calculated")

	fallbacks := make([]Fallback, 0, len(hoursFallbacks)+len(capacityFallbacks)+len(financialFallbacks))
	fallbacks = append(fallbacks, hoursFallbacks...)
	fallbacks = append(fallbacks, capacityFallbacks...)
	fallbacks = append(fallbacks, financialFallbacks...)
	for _, f := range fallbacks {
		log.Warn().Str("code", f.Code).Str("field", f.Field).Msg(f.Message)
	}

	result, err := Aggregate(in, hours, capacity, financial, a, fallbacks)
	if err != nil {
		return Result{}, fmt.Errorf("aggregate analysis: %w", err)
	}

	log.Info().
		Float64("current_revenue", result.CurrentRevenue).
		Float64("unrealized_revenue", result.UnrealizedRevenue).
		Int("fallbacks", len(result.Fallbacks)).
		Msg("analysis completed")

	return result, nil
}
