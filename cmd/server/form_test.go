package main

import (
	"net/url"
	"testing"

	"github.com/Simplici0/dogsclub/internal/metrics"
)

func TestParseAnalysisForm_RoundTrip(t *testing.T) {
	want := sampleInput()
	target := 25000.0
	want.TargetRevenue = &target

	got, errs := parseAnalysisForm(inputValues(want))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if got.BusinessName != want.BusinessName || got.DaysPerWeek != want.DaysPerWeek || got.AveragePrice != want.AveragePrice {
		t.Fatalf("got %+v", got)
	}
	if got.TargetRevenue == nil || *got.TargetRevenue != 25000 {
		t.Fatalf("TargetRevenue=%v", got.TargetRevenue)
	}
	if _, err := metrics.NewInput(got); err != nil {
		t.Fatalf("parsed form rejected: %v", err)
	}
}

func TestParseAnalysisForm_OptionalFieldsStayNil(t *testing.T) {
	form := inputValues(sampleInput())
	form.Del("previous_revenue")
	form.Del("target_profit")

	got, errs := parseAnalysisForm(form)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if got.PreviousRevenue != nil || got.TargetProfit != nil {
		t.Fatalf("optional fields set: %v %v", got.PreviousRevenue, got.TargetProfit)
	}
}

func TestParseAnalysisForm_DecimalComma(t *testing.T) {
	form := inputValues(sampleInput())
	form.Set("average_price", "92,50")

	got, errs := parseAnalysisForm(form)
	if len(errs) != 0 || got.AveragePrice != 92.5 {
		t.Fatalf("AveragePrice=%v errs=%+v", got.AveragePrice, errs)
	}
}

func TestParseAnalysisForm_Errors(t *testing.T) {
	form := url.Values{}
	form.Set("days_per_week", "6.5")
	form.Set("average_price", "abc")

	_, errs := parseAnalysisForm(form)
	msgs := fieldErrorMap(errs)
	if msgs["days_per_week"] != "days_per_week deve ser um número inteiro" {
		t.Fatalf("days_per_week=%q", msgs["days_per_week"])
	}
	if msgs["average_price"] != "average_price deve ser um número" {
		t.Fatalf("average_price=%q", msgs["average_price"])
	}
	if msgs["monthly_revenue"] != "monthly_revenue é obrigatório" {
		t.Fatalf("monthly_revenue=%q", msgs["monthly_revenue"])
	}
	if _, ok := msgs["previous_revenue"]; ok {
		t.Fatalf("optional field reported as missing")
	}
}

func TestParseAnalysisForm_OptionalExpensesDefaultToZero(t *testing.T) {
	form := inputValues(sampleInput())
	form.Del("rent_expense")
	form.Del("other_expense")

	got, errs := parseAnalysisForm(form)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if got.RentExpense != 0 || got.OtherExpense != 0 {
		t.Fatalf("RentExpense=%v OtherExpense=%v, want 0", got.RentExpense, got.OtherExpense)
	}
	if _, err := metrics.NewInput(got); err != nil {
		t.Fatalf("form without optional expenses rejected: %v", err)
	}

	form.Set("rent_expense", "muito")
	if _, errs := parseAnalysisForm(form); fieldErrorMap(errs)["rent_expense"] != "rent_expense deve ser um número" {
		t.Fatalf("malformed rent_expense not reported: %+v", errs)
	}
}

func TestParseAnalysisForm_BrazilianNumbers(t *testing.T) {
	cases := map[string]float64{
		"1.800":    1800,
		"1.800,50": 1800.5,
		"12.500":   12500,
		"1800.5":   1800.5,
		"1800":     1800,
	}
	for raw, want := range cases {
		form := inputValues(sampleInput())
		form.Set("average_salary", raw)

		got, errs := parseAnalysisForm(form)
		if len(errs) != 0 {
			t.Fatalf("%s: unexpected errors: %+v", raw, errs)
		}
		if got.AverageSalary != want {
			t.Fatalf("%s: AverageSalary = %v, want %v", raw, got.AverageSalary, want)
		}
	}
}
