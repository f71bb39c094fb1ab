package metrics

// FormDefaults is the pre-filled analysis form: a typical small grooming shop.
// Identity fields are left empty.
func FormDefaults() Input {
	previous, target := 17000.0, 6000.0
	return Input{
		OpeningTime:      "08:00",
		ClosingTime:      "18:00",
		DaysPerWeek:      6,
		EmployeeCount:    3,
		GroomingStaff:    2,
		AverageSalary:    1800,
		ServiceMinutes:   90,
		MonthlyServices:  200,
		AveragePrice:     90,
		MonthlyRevenue:   18000,
		PreviousRevenue:  &previous,
		UtilitiesExpense: 800,
		SuppliesExpense:  3600,
		RentExpense:      2500,
		OtherExpense:     1000,
		TargetProfit:     &target,
	}
}
