package metrics

import "testing"

func TestCapacity_TwoGroomers(t *testing.T) {
	in := mustInput(t, sampleInput())
	h, _ := WorkingHours(in.OpeningTime, in.ClosingTime, in.DaysPerWeek, DefaultAssumptions())

	c, fallbacks := Capacity(in, h, DefaultAssumptions())

	if len(fallbacks) != 0 {
		t.Fatalf("unexpected fallbacks: %+v", fallbacks)
	}
	if c.IdealDailyCapacity != 11 {
		t.Fatalf("idealDailyCapacity = %d, want 11", c.IdealDailyCapacity)
	}
	if c.IdealMonthlyCapacity != 290 {
		t.Fatalf("idealMonthlyCapacity = %d, want 290", c.IdealMonthlyCapacity)
	}
	nearlyEqual(t, "utilization", c.UtilizationPercent, 200.0/290*100)
	nearlyEqual(t, "idleHoursPerDay", c.IdleHoursPerDay, 17-(200/26.4)*1.5)
}

func TestCapacity_ZeroCapacity(t *testing.T) {
	in := sampleInput()
	in.GroomingStaff = 1
	in.ServiceMinutes = 600

	c, fallbacks := Capacity(in, HoursResult{DailyHours: 1, MonthlyHours: 22, WorkingDays: 22}, DefaultAssumptions())

	if c.IdealDailyCapacity != 0 || c.IdealMonthlyCapacity != 0 {
		t.Fatalf("expected zero capacity, got %+v", c)
	}
	if !Has(fallbacks, FallbackZeroCapacity) {
		t.Fatalf("expected %s fallback, got %+v", FallbackZeroCapacity, fallbacks)
	}
	nearlyEqual(t, "utilization", c.UtilizationPercent, 0)
	nearlyEqual(t, "idleHoursPerDay", c.IdleHoursPerDay, 0)
}

func TestCapacity_ShortServiceUsesMinimumDuration(t *testing.T) {
	in := sampleInput()
	in.ServiceMinutes = 10
	in.GroomingStaff = 1

	c, _ := Capacity(in, HoursResult{DailyHours: 10, MonthlyHours: 220, WorkingDays: 22}, DefaultAssumptions())

	// 10h * 60 * 0.85 / 30min
	if c.IdealDailyCapacity != 17 {
		t.Fatalf("idealDailyCapacity = %d, want 17", c.IdealDailyCapacity)
	}
}

func TestCapacity_OverbookedShopHasNoIdleTime(t *testing.T) {
	in := sampleInput()
	in.MonthlyServices = 1000

	h, _ := WorkingHours(in.OpeningTime, in.ClosingTime, in.DaysPerWeek, DefaultAssumptions())
	c, _ := Capacity(in, h, DefaultAssumptions())

	if c.UtilizationPercent <= 100 {
		t.Fatalf("utilization = %v, want above 100", c.UtilizationPercent)
	}
	nearlyEqual(t, "idleHoursPerDay", c.IdleHoursPerDay, 0)
}
