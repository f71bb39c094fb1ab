package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Simplici0/dogsclub/internal/metrics"
	"github.com/Simplici0/dogsclub/internal/report"
)

var now = time.Now

var (
	titleColor   = color.New(color.FgMagenta, color.Bold)
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	labelColor   = color.New(color.FgWhite)
)

func printSuccess(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, format+"\n", args...)
}

func printSection(w io.Writer, title string) {
	fmt.Fprintln(w)
	headerColor.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", 60))
}

func printRow(w io.Writer, label, value string) {
	labelColor.Fprintf(w, "%-34s", label)
	fmt.Fprintln(w, value)
}

func verdictColor(p metrics.Position) *color.Color {
	switch p {
	case metrics.Below:
		return warningColor
	case metrics.Above:
		return headerColor
	default:
		return successColor
	}
}

func printDashboard(w io.Writer, res metrics.Result, rep report.Report) {
	titleColor.Fprintf(w, "Análise Financeira - %s\n", res.BusinessName)

	printSection(w, "Métricas principais")
	printRow(w, "Faturamento atual", report.FormatCurrency(res.CurrentRevenue))
	printRow(w, "Faturamento potencial", report.FormatCurrency(res.PotentialRevenue))
	printRow(w, "Faturamento não realizado", report.FormatCurrency(res.UnrealizedRevenue)+"/mês")
	printRow(w, "Taxa de ocupação", report.FormatPercent(res.UtilizationPercent))
	printRow(w, "Atendimentos (atual / capacidade)", fmt.Sprintf("%d / %d", res.CurrentServices, res.IdealMonthlyCapacity))
	printRow(w, "Tempo ocioso", fmt.Sprintf("%.1fh/dia", res.IdleHoursPerDay))
	printRow(w, "Lucro mensal", report.FormatCurrency(res.CurrentProfit))
	printRow(w, "Margem de lucro", report.FormatPercent(res.ProfitMargin))
	printRow(w, "Crescimento do faturamento", report.FormatPercentPtr(res.RevenueGrowth))
	printRow(w, "Diferença para a meta de lucro", report.FormatCurrencyPtr(res.ProfitGoalDelta))
	printRow(w, "Ponto de equilíbrio", fmt.Sprintf("%d atendimentos/mês", res.BreakEvenServices))

	printSection(w, "Comparação com o setor")
	for _, c := range rep.Benchmarks {
		labelColor.Fprintf(w, "%-34s", c.Label)
		verdictColor(c.Position).Fprintln(w, c.Verdict())
	}

	if len(res.Fallbacks) > 0 {
		printSection(w, "Observações")
		for _, f := range res.Fallbacks {
			warningColor.Fprintf(w, "! %s\n", f.Message)
		}
	}

	printSection(w, "Recomendações")
	for _, item := range rep.Recommendations {
		fmt.Fprintf(w, "• %s\n", item.Title)
	}

	printSection(w, "Metas")
	for _, item := range rep.Goals {
		fmt.Fprintf(w, "• %s: %s\n", item.Title, plain(item.Description))
	}
}

// plain strips the markdown emphasis used in report text.
func plain(s string) string {
	return strings.NewReplacer("**", "", "*", "", `\`, "").Replace(s)
}
