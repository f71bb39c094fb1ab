package report

import (
	"math"

	"github.com/Simplici0/dogsclub/internal/metrics"
)

const (
	colorBlue  = "#3498db"
	colorGreen = "#2ecc71"
	colorRed   = "#e74c3c"
	colorGrey  = "#95a5a6"
)

// Point is one bar or slice. Share is the point's percentage of the chart:
// of the largest bar for bar charts, of the total for pies.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Share float64 `json:"share"`
	Color string  `json:"color"`
}

// Chart is render-agnostic chart data.
type Chart struct {
	Title   string  `json:"title"`
	Kind    string  `json:"kind"`
	Unit    string  `json:"unit"`
	Points  []Point `json:"points"`
	Empty   bool    `json:"empty,omitempty"`
	Message string  `json:"message,omitempty"`
}

// ChartSet is the data for the four dashboard views.
type ChartSet struct {
	Revenue       Chart `json:"revenue"`
	Occupancy     Chart `json:"occupancy"`
	Margin        Chart `json:"margin"`
	CostStructure Chart `json:"cost_structure"`
}

// Charts derives the dashboard chart data from res.
func Charts(res metrics.Result) ChartSet {
	return ChartSet{
		Revenue:       revenueChart(res),
		Occupancy:     occupancyChart(res),
		Margin:        marginChart(res),
		CostStructure: costChart(res),
	}
}

func revenueChart(res metrics.Result) Chart {
	return Chart{
		Title: "Faturamento Mensal (R$)",
		Kind:  "bar",
		Unit:  "R$",
		Points: bars([]Point{
			{Label: "Atual", Value: res.CurrentRevenue, Color: colorBlue},
			{Label: "Potencial", Value: res.PotentialRevenue, Color: colorGreen},
		}),
	}
}

func occupancyChart(res metrics.Result) Chart {
	used := math.Max(0, res.UtilizationPercent)
	return Chart{
		Title: "Taxa de Ocupação",
		Kind:  "donut",
		Unit:  "%",
		Points: pieShares([]Point{
			{Label: "Utilizada", Value: used, Color: colorBlue},
			{Label: "Não utilizada", Value: math.Max(0, 100-used), Color: colorGrey},
		}),
	}
}

func marginChart(res metrics.Result) Chart {
	r := metrics.Benchmarks.ProfitMargin

	current := colorBlue
	switch r.Position(res.ProfitMargin) {
	case metrics.Below:
		current = colorRed
	case metrics.Above:
		current = colorGreen
	}

	return Chart{
		Title: "Margem de Lucro (%)",
		Kind:  "bar",
		Unit:  "%",
		Points: bars([]Point{
			{Label: "Atual", Value: res.ProfitMargin, Color: current},
			{Label: "Mínimo Setor", Value: r.Min, Color: colorGrey},
			{Label: "Máximo Setor", Value: r.Max, Color: colorGrey},
		}),
	}
}

func costChart(res metrics.Result) Chart {
	personnel := math.Max(0, res.PersonnelExpense)
	supplies := math.Max(0, res.VariableCost)
	other := math.Max(0, math.Max(0, res.TotalExpense)-personnel-supplies)

	c := Chart{Title: "Estrutura de Custos", Kind: "pie", Unit: "R$"}
	if personnel+supplies+other <= 0 {
		c.Empty = true
		c.Message = "Dados de custos não disponíveis"
		return c
	}
	c.Points = pieShares([]Point{
		{Label: "Pessoal", Value: personnel, Color: colorBlue},
		{Label: "Produtos", Value: supplies, Color: colorGreen},
		{Label: "Outros", Value: other, Color: colorGrey},
	})
	return c
}

func bars(points []Point) []Point {
	top := 0.0
	for _, p := range points {
		top = math.Max(top, p.Value)
	}
	for i := range points {
		if top > 0 {
			points[i].Share = math.Max(0, points[i].Value) / top * 100
		}
	}
	return points
}

func pieShares(points []Point) []Point {
	total := 0.0
	for _, p := range points {
		total += p.Value
	}
	for i := range points {
		if total > 0 {
			points[i].Share = points[i].Value / total * 100
		}
	}
	return points
}
