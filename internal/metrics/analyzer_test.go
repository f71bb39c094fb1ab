package metrics

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestAnalyze_BaseShop(t *testing.T) {
	in := mustInput(t, sampleInput())

	res, err := Analyze(in)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if res.BusinessName != "Banho & Tosa Feliz" {
		t.Fatalf("BusinessName = %q", res.BusinessName)
	}
	nearlyEqual(t, "currentRevenue", res.CurrentRevenue, 18000)
	nearlyEqual(t, "potentialRevenue", res.PotentialRevenue, 26100)
	nearlyEqual(t, "annualCurrentRevenue", res.AnnualCurrentRevenue, 216000)
	nearlyEqual(t, "annualPotentialRevenue", res.AnnualPotentialRevenue, 313200)
	nearlyEqual(t, "monthlyHours", res.MonthlyHours, 264)
	nearlyEqual(t, "utilization", res.UtilizationPercent, 200.0/290*100)
	if res.IdealMonthlyCapacity != 290 || res.CurrentServices != 200 {
		t.Fatalf("capacity = %d, services = %d", res.IdealMonthlyCapacity, res.CurrentServices)
	}
	if res.RevenueGrowth == nil {
		t.Fatalf("expected revenue growth")
	}
	nearlyEqual(t, "revenueGrowth", *res.RevenueGrowth, 5.88235294117647)
	if len(res.Fallbacks) != 0 {
		t.Fatalf("unexpected fallbacks: %+v", res.Fallbacks)
	}
	if res.Assumptions != DefaultAssumptions() {
		t.Fatalf("Assumptions = %+v, want defaults", res.Assumptions)
	}
}

func TestAnalyze_IsDeterministic(t *testing.T) {
	in := mustInput(t, sampleInput())
	an := NewAnalyzer(Assumptions{}, zerolog.Nop())

	first, err := an.Analyze(in)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	second, err := an.Analyze(in)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}

	*first.RevenueGrowth = 0
	if *second.RevenueGrowth == 0 {
		t.Fatalf("results share pointer fields")
	}
}

func TestAnalyze_RejectsInvalidInput(t *testing.T) {
	in := sampleInput()
	in.GroomingStaff = 5

	_, err := Analyze(in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyze_DegenerateShopStaysFinite(t *testing.T) {
	raw := sampleInput()
	raw.OpeningTime = "08:00"
	raw.ClosingTime = "08:00"
	raw.EmployeeCount = 1
	raw.GroomingStaff = 1
	raw.AverageSalary = 0
	raw.ServiceMinutes = 600
	raw.MonthlyServices = 0
	raw.AveragePrice = 0
	raw.MonthlyRevenue = 0
	raw.PreviousRevenue = nil
	raw.UtilitiesExpense = 0
	raw.SuppliesExpense = 0
	raw.RentExpense = 0
	raw.OtherExpense = 0
	raw.TargetProfit = nil

	res, err := Analyze(mustInput(t, raw))
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	for _, code := range []string{FallbackShortDay, FallbackDefaultRevenue, FallbackDefaultPrice, FallbackCostShares} {
		if !Has(res.Fallbacks, code) {
			t.Fatalf("expected %s fallback, got %+v", code, res.Fallbacks)
		}
	}

	v := reflect.ValueOf(res)
	for i := 0; i < v.NumField(); i++ {
		if f, ok := v.Field(i).Interface().(float64); ok {
			name := v.Type().Field(i).Name
			if math.IsNaN(f) || math.IsInf(f, 0) {
				t.Fatalf("%s = %v, want finite", name, f)
			}
		}
	}
	if res.UnrealizedRevenue < 0 || res.IdleHoursPerDay < 0 || res.UtilizationPercent < 0 {
		t.Fatalf("negative clamped metric: %+v", res)
	}
	if res.RevenueGrowth != nil {
		t.Fatalf("revenueGrowth = %v, want nil", *res.RevenueGrowth)
	}
}

func TestAggregate_RejectsZeroWorkingDays(t *testing.T) {
	_, err := Aggregate(sampleInput(), HoursResult{DailyHours: 8}, CapacityResult{}, FinancialResult{}, DefaultAssumptions(), nil)
	if !errors.Is(err, ErrIncompleteResult) {
		t.Fatalf("expected ErrIncompleteResult, got %v", err)
	}
}

func TestAggregate_RejectsNonFiniteValue(t *testing.T) {
	h := HoursResult{DailyHours: 8, MonthlyHours: 176, WorkingDays: 22}
	f := FinancialResult{ProfitMargin: math.NaN()}

	_, err := Aggregate(sampleInput(), h, CapacityResult{}, f, DefaultAssumptions(), nil)
	if !errors.Is(err, ErrIncompleteResult) {
		t.Fatalf("expected ErrIncompleteResult, got %v", err)
	}
}

func TestAggregate_CopiesFallbacks(t *testing.T) {
	h := HoursResult{DailyHours: 8, MonthlyHours: 176, WorkingDays: 22}
	fallbacks := []Fallback{{Code: FallbackDefaultRevenue}}

	res, err := Aggregate(sampleInput(), h, CapacityResult{}, FinancialResult{}, DefaultAssumptions(), fallbacks)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	fallbacks[0].Code = "changed"
	if res.Fallbacks[0].Code != FallbackDefaultRevenue {
		t.Fatalf("result shares fallback slice with caller")
	}
}

func TestBenchmarks_Position(t *testing.T) {
	if got := Benchmarks.ProfitMargin.Position(10); got != Below {
		t.Fatalf("Position(10) = %v, want Below", got)
	}
	if got := Benchmarks.ProfitMargin.Position(25); got != Within {
		t.Fatalf("Position(25) = %v, want Within", got)
	}
	if got := Benchmarks.Occupancy.Position(90); got != Above {
		t.Fatalf("Position(90) = %v, want Above", got)
	}
}
