package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// NotAvailable replaces values that could not be computed.
const NotAvailable = "Não disponível"

// FormatCurrency renders v in Brazilian reais, e.g. "R$ 1.234,56".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return "R$ " + humanize.FormatFloat("#.###,##", v)
}

// FormatCurrencyPtr is FormatCurrency for optional values.
func FormatCurrencyPtr(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return FormatCurrency(*v)
}

// FormatPercent renders v with one decimal place, e.g. "12.3%".
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", v)
}

// FormatPercentPtr is FormatPercent for optional values.
func FormatPercentPtr(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return FormatPercent(*v)
}

// FormatMinutes renders a duration in minutes as "hh:mm".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
