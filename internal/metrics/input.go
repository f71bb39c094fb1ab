package metrics

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is wrapped by every ValidationError.
var ErrInvalidInput = errors.New("invalid business input")

var clockFormat = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// validate is safe for concurrent use once built.
var validate = NewValidator()

// Input is the validated set of business figures for one analysis run.
// Build it with NewInput; the pipeline never mutates it.
type Input struct {
	OwnerName    string `json:"owner_name,omitempty" yaml:"owner_name"`
	BusinessName string `json:"business_name" yaml:"business_name" validate:"required"`
	ContactEmail string `json:"contact_email" yaml:"contact_email" validate:"required,email"`
	Phone        string `json:"phone,omitempty" yaml:"phone"`
	WhatsApp     string `json:"whatsapp,omitempty" yaml:"whatsapp"`

	OpeningTime string `json:"opening_time" yaml:"opening_time" validate:"required,hhmm"`
	ClosingTime string `json:"closing_time" yaml:"closing_time" validate:"required,hhmm"`
	DaysPerWeek int    `json:"days_per_week" yaml:"days_per_week" validate:"min=1,max=7"`

	EmployeeCount int     `json:"employee_count" yaml:"employee_count" validate:"min=1"`
	GroomingStaff int     `json:"grooming_staff" yaml:"grooming_staff" validate:"min=1,ltefield=EmployeeCount"`
	AverageSalary float64 `json:"average_salary" yaml:"average_salary" validate:"gte=0"`

	ServiceMinutes  int     `json:"service_minutes" yaml:"service_minutes" validate:"min=30"`
	MonthlyServices int     `json:"monthly_services" yaml:"monthly_services" validate:"gte=0"`
	AveragePrice    float64 `json:"average_price" yaml:"average_price" validate:"gte=0"`

	MonthlyRevenue   float64  `json:"monthly_revenue" yaml:"monthly_revenue" validate:"gte=0"`
	PreviousRevenue  *float64 `json:"previous_revenue,omitempty" yaml:"previous_revenue,omitempty" validate:"omitempty,gte=0"`
	UtilitiesExpense float64  `json:"utilities_expense" yaml:"utilities_expense" validate:"gte=0"`
	SuppliesExpense  float64  `json:"supplies_expense" yaml:"supplies_expense" validate:"gte=0"`
	RentExpense      float64  `json:"rent_expense" yaml:"rent_expense" validate:"gte=0"`
	OtherExpense     float64  `json:"other_expense" yaml:"other_expense" validate:"gte=0"`

	TargetProfit  *float64 `json:"target_profit,omitempty" yaml:"target_profit,omitempty"`
	TargetRevenue *float64 `json:"target_revenue,omitempty" yaml:"target_revenue,omitempty" validate:"omitempty,gte=0"`
	Challenge     string   `json:"challenge,omitempty" yaml:"challenge"`

	// Derived by NewInput when left nil.
	FixedMonthlyCost *float64 `json:"fixed_monthly_cost,omitempty" yaml:"fixed_monthly_cost,omitempty" validate:"omitempty,gte=0"`
	SuppliesPercent  *float64 `json:"supplies_percent,omitempty" yaml:"supplies_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// FieldError describes one rejected field using its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Message returns the message for field, or "" when the field passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// NewInput validates in and fills the derived fields that were not supplied.
// An invalid record is never returned.
func NewInput(in Input) (Input, error) {
	in.OwnerName = strings.TrimSpace(in.OwnerName)
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.Phone = strings.TrimSpace(in.Phone)
	in.WhatsApp = strings.TrimSpace(in.WhatsApp)
	in.OpeningTime = strings.TrimSpace(in.OpeningTime)
	in.ClosingTime = strings.TrimSpace(in.ClosingTime)
	in.Challenge = strings.TrimSpace(in.Challenge)

	if err := in.Validate(); err != nil {
		return Input{}, err
	}

	in.PreviousRevenue = cloneFloat(in.PreviousRevenue)
	in.TargetProfit = cloneFloat(in.TargetProfit)
	in.TargetRevenue = cloneFloat(in.TargetRevenue)

	if in.FixedMonthlyCost == nil {
		fixed := in.UtilitiesExpense + in.RentExpense + in.OtherExpense + in.AverageSalary*float64(in.EmployeeCount)
		in.FixedMonthlyCost = &fixed
	} else {
		in.FixedMonthlyCost = cloneFloat(in.FixedMonthlyCost)
	}

	if in.SuppliesPercent == nil {
		pct := DefaultAssumptions().DefaultSuppliesPercent
		if in.MonthlyRevenue > 0 {
			pct = math.Min(100, in.SuppliesExpense/in.MonthlyRevenue*100)
		}
		in.SuppliesPercent = &pct
	} else {
		in.SuppliesPercent = cloneFloat(in.SuppliesPercent)
	}

	return in, nil
}

// Validate checks the field constraints without deriving anything.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate business input: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

// NewValidator returns a validator that reports fields by their JSON name
// and knows the hhmm clock rule.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return validClock(fl.Field().String())
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", field)
	case "email":
		return fmt.Sprintf("%s deve ser um e-mail válido", field)
	case "hhmm":
		return fmt.Sprintf("%s deve estar no formato HH:MM", field)
	case "min", "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s deve ser menor ou igual a %s", field, fe.Param())
	case "ltefield":
		return "o número de funcionários de banho e tosa não pode ser maior que o total de funcionários"
	default:
		return fmt.Sprintf("%s é inválido", field)
	}
}

// validClock accepts H:MM or HH:MM with hours 0-23 and minutes 0-59.
func validClock(s string) bool {
	if !clockFormat.MatchString(s) {
		return false
	}
	h, m, _ := strings.Cut(s, ":")
	hour, _ := strconv.Atoi(h)
	minute, _ := strconv.Atoi(m)
	return hour <= 23 && minute <= 59
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
