package report

import "github.com/Simplici0/dogsclub/internal/metrics"

// Comparison places one result metric against its industry range.
type Comparison struct {
	Key      string           `json:"key"`
	Label    string           `json:"label"`
	Value    float64          `json:"value"`
	Range    metrics.Range    `json:"range"`
	Position metrics.Position `json:"position"`
	Unit     string           `json:"unit"`
}

// Verdict is the Portuguese wording for the comparison outcome.
func (c Comparison) Verdict() string {
	return positionWord(c.Position)
}

// Compare returns the benchmark comparisons shown on the dashboard and in the report.
func Compare(res metrics.Result) []Comparison {
	b := metrics.Benchmarks
	rows := []Comparison{
		{Key: "profit_margin", Label: "Margem de lucro", Value: res.ProfitMargin, Range: b.ProfitMargin, Unit: "%"},
		{Key: "personnel_share", Label: "Despesas com pessoal", Value: res.PersonnelShare, Range: b.PersonnelShare, Unit: "%"},
		{Key: "average_ticket", Label: "Ticket médio", Value: res.AveragePrice, Range: b.AverageTicket, Unit: "R$"},
		{Key: "revenue_per_employee", Label: "Faturamento por funcionário", Value: res.RevenuePerEmployee, Range: b.RevenuePerEmployee, Unit: "R$"},
		{Key: "occupancy", Label: "Taxa de ocupação", Value: res.UtilizationPercent, Range: b.Occupancy, Unit: "%"},
	}
	for i := range rows {
		rows[i].Position = rows[i].Range.Position(rows[i].Value)
	}
	return rows
}

func positionWord(p metrics.Position) string {
	switch p {
	case metrics.Below:
		return "abaixo"
	case metrics.Above:
		return "acima"
	default:
		return "dentro"
	}
}

func (c Comparison) formatValue(v float64) string {
	if c.Unit == "R$" {
		return FormatCurrency(v)
	}
	return FormatPercent(v)
}
