package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/Simplici0/dogsclub/internal/metrics"
)

// maxBodyBytes caps request bodies for the analysis and contact endpoints.
const maxBodyBytes = 1 << 20

type formParser struct {
	form url.Values
	errs []metrics.FieldError
}

func (p *formParser) text(name string) string {
	return strings.TrimSpace(p.form.Get(name))
}

// thousandsOnly matches BRL-style integers such as "1.800" or "12.500.000".
var thousandsOnly = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// number accepts "1234.5", "1234,5", "1.234,50" and "1.800".
func (p *formParser) number(name string) (float64, bool) {
	raw := p.text(name)
	if raw == "" {
		return 0, false
	}
	switch {
	case strings.Contains(raw, ","):
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	case thousandsOnly.MatchString(raw):
		raw = strings.ReplaceAll(raw, ".", "")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(name, fmt.Sprintf("%s deve ser um número", name))
		return 0, false
	}
	return v, true
}

// optionalAmount returns 0 for an empty field.
func (p *formParser) optionalAmount(name string) float64 {
	v, _ := p.number(name)
	return v
}

func (p *formParser) requiredFloat(name string) float64 {
	if p.text(name) == "" {
		p.fail(name, fmt.Sprintf("%s é obrigatório", name))
		return 0
	}
	v, _ := p.number(name)
	return v
}

func (p *formParser) requiredInt(name string) int {
	raw := p.text(name)
	if raw == "" {
		p.fail(name, fmt.Sprintf("%s é obrigatório", name))
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(name, fmt.Sprintf("%s deve ser um número inteiro", name))
		return 0
	}
	return v
}

// optionalFloat returns nil for an empty field.
func (p *formParser) optionalFloat(name string) *float64 {
	v, ok := p.number(name)
	if !ok {
		return nil
	}
	return &v
}

func (p *formParser) fail(field, message string) {
	p.errs = append(p.errs, metrics.FieldError{Field: field, Message: message})
}

// parseAnalysisForm reads the dashboard form. Field errors cover only
// missing or malformed numbers; range checks happen in metrics.NewInput.
func parseAnalysisForm(form url.Values) (metrics.Input, []metrics.FieldError) {
	p := &formParser{form: form}
	in := metrics.Input{
		OwnerName:    p.text("owner_name"),
		BusinessName: p.text("business_name"),
		ContactEmail: p.text("contact_email"),
		Phone:        p.text("phone"),
		WhatsApp:     p.text("whatsapp"),
		OpeningTime:  p.text("opening_time"),
		ClosingTime:  p.text("closing_time"),
		Challenge:    p.text("challenge"),

		DaysPerWeek:     p.requiredInt("days_per_week"),
		EmployeeCount:   p.requiredInt("employee_count"),
		GroomingStaff:   p.requiredInt("grooming_staff"),
		ServiceMinutes:  p.requiredInt("service_minutes"),
		MonthlyServices: p.requiredInt("monthly_services"),

		AverageSalary:    p.requiredFloat("average_salary"),
		AveragePrice:     p.requiredFloat("average_price"),
		MonthlyRevenue:   p.requiredFloat("monthly_revenue"),
		UtilitiesExpense: p.requiredFloat("utilities_expense"),
		SuppliesExpense:  p.requiredFloat("supplies_expense"),
		RentExpense:      p.optionalAmount("rent_expense"),
		OtherExpense:     p.optionalAmount("other_expense"),

		PreviousRevenue: p.optionalFloat("previous_revenue"),
		TargetProfit:    p.optionalFloat("target_profit"),
		TargetRevenue:   p.optionalFloat("target_revenue"),
	}
	return in, p.errs
}

// inputValues is the inverse of parseAnalysisForm, used to prefill the form.
func inputValues(in metrics.Input) url.Values {
	v := url.Values{}
	set := func(name, value string) {
		if value != "" {
			v.Set(name, value)
		}
	}
	num := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	opt := func(f *float64) string {
		if f == nil {
			return ""
		}
		return num(*f)
	}

	set("owner_name", in.OwnerName)
	set("business_name", in.BusinessName)
	set("contact_email", in.ContactEmail)
	set("phone", in.Phone)
	set("whatsapp", in.WhatsApp)
	set("opening_time", in.OpeningTime)
	set("closing_time", in.ClosingTime)
	set("challenge", in.Challenge)
	set("days_per_week", strconv.Itoa(in.DaysPerWeek))
	set("employee_count", strconv.Itoa(in.EmployeeCount))
	set("grooming_staff", strconv.Itoa(in.GroomingStaff))
	set("service_minutes", strconv.Itoa(in.ServiceMinutes))
	set("monthly_services", strconv.Itoa(in.MonthlyServices))
	set("average_salary", num(in.AverageSalary))
	set("average_price", num(in.AveragePrice))
	set("monthly_revenue", num(in.MonthlyRevenue))
	set("utilities_expense", num(in.UtilitiesExpense))
	set("supplies_expense", num(in.SuppliesExpense))
	set("rent_expense", num(in.RentExpense))
	set("other_expense", num(in.OtherExpense))
	set("previous_revenue", opt(in.PreviousRevenue))
	set("target_profit", opt(in.TargetProfit))
	set("target_revenue", opt(in.TargetRevenue))
	return v
}

func fieldErrorMap(errs []metrics.FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// decodeInput reads a business input from a JSON body or, for browser
// forms, from form values. formErrs is only set for form bodies.
func decodeInput(w http.ResponseWriter, r *http.Request) (in metrics.Input, formErrs []metrics.FieldError, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return metrics.Input{}, nil, fmt.Errorf("decode json body: %w", err)
		}
		return in, nil, nil
	}

	if err := r.ParseForm(); err != nil {
		return metrics.Input{}, nil, fmt.Errorf("parse form: %w", err)
	}
	in, formErrs = parseAnalysisForm(r.PostForm)
	return in, formErrs, nil
}
