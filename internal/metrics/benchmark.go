package metrics

// Position locates a value relative to a benchmark range.
type Position int

const (
	Below Position = iota - 1
	Within
	Above
)

// Range is an inclusive industry reference interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Position reports where v falls relative to r.
func (r Range) Position(v float64) Position {
	switch {
	case v < r.Min:
		return Below
	case v > r.Max:
		return Above
	default:
		return Within
	}
}

// IndustryBenchmarks are reference ranges for small grooming businesses.
type IndustryBenchmarks struct {
	ProfitMargin       Range `json:"profit_margin"`        // percent
	PersonnelShare     Range `json:"personnel_share"`      // percent of total expense
	AverageTicket      Range `json:"average_ticket"`       // R$
	RevenuePerEmployee Range `json:"revenue_per_employee"` // R$
	Occupancy          Range `json:"occupancy"`            // percent
}

// Benchmarks is read-only reference data.
var Benchmarks = IndustryBenchmarks{
	ProfitMargin:       Range{Min: 15, Max: 25},
	PersonnelShare:     Range{Min: 40, Max: 50},
	AverageTicket:      Range{Min: 80, Max: 150},
	RevenuePerEmployee: Range{Min: 5000, Max: 8000},
	Occupancy:          Range{Min: 70, Max: 85},
}
