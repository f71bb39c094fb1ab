package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Simplici0/dogsclub/internal/metrics"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

var documentTemplate = template.Must(template.New("document").Parse(`<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; max-width: 800px; margin: 2rem auto; color: #2c3e50; }
h1, h2 { color: #2c3e50; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #e0e0e0; padding: .5rem; text-align: center; }
th { background: #3498db; color: #fff; }
footer { margin-top: 3rem; font-size: .8rem; color: #7f8c8d; text-align: center; }
</style>
</head>
<body>
{{.Body}}
<footer>
<p>Dog's Club - Conectando Pets e Cuidados com Simplicidade</p>
<p>© {{.Year}} Dog's Club. Todos os direitos reservados.</p>
</footer>
</body>
</html>
`))

// Markdown renders the exportable analysis document as markdown.
func Markdown(in metrics.Input, res metrics.Result, rep Report, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Análise Financeira\n\n## %s\n\n", escape(res.BusinessName))
	fmt.Fprintf(&b, "Data de geração do relatório: %s\n\n", generatedAt.Format("02/01/2006"))

	b.WriteString("## Métricas Principais\n\n")
	b.WriteString("| Faturamento Mensal | Lucro Mensal | Taxa de Ocupação |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n", FormatCurrency(res.CurrentRevenue), FormatCurrency(res.CurrentProfit), FormatPercent(res.UtilizationPercent))
	fmt.Fprintf(&b, "| Potencial: %s | Margem: %s | Tempo ocioso: %.1fh/dia |\n\n",
		FormatCurrency(res.PotentialRevenue), FormatPercent(res.ProfitMargin), res.IdleHoursPerDay)

	b.WriteString("| Indicador | Valor |\n|---|---|\n")
	fmt.Fprintf(&b, "| Crescimento do faturamento | %s |\n", FormatPercentPtr(res.RevenueGrowth))
	fmt.Fprintf(&b, "| Diferença para a meta de lucro | %s |\n", FormatCurrencyPtr(res.ProfitGoalDelta))
	fmt.Fprintf(&b, "| Diferença para a meta de faturamento | %s |\n", FormatCurrencyPtr(res.RevenueGoalDelta))
	fmt.Fprintf(&b, "| Ponto de equilíbrio | %d atendimentos/mês |\n", res.BreakEvenServices)
	fmt.Fprintf(&b, "| Tempo médio por atendimento | %s |\n\n", FormatMinutes(in.ServiceMinutes))

	b.WriteString("## Potencial Não Aproveitado\n\n")
	b.WriteString("| Dinheiro Deixado na Mesa | Capacidade Não Utilizada |\n|---|---|\n")
	fmt.Fprintf(&b, "| %s/ano | %d atendimentos/mês |\n\n",
		FormatCurrency(res.UnrealizedRevenue*12), max(0, res.IdealMonthlyCapacity-res.CurrentServices))

	b.WriteString("## Comparação com o Setor\n\n")
	b.WriteString("| Indicador | Atual | Referência | Situação |\n|---|---|---|---|\n")
	for _, c := range rep.Benchmarks {
		fmt.Fprintf(&b, "| %s | %s | %s a %s | %s |\n",
			c.Label, c.formatValue(c.Value), c.formatValue(c.Range.Min), c.formatValue(c.Range.Max), c.Verdict())
	}
	b.WriteString("\n")

	if len(res.Fallbacks) > 0 {
		b.WriteString("## Observações\n\n")
		for _, f := range res.Fallbacks {
			fmt.Fprintf(&b, "- %s\n", escape(f.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Análise e Recomendações\n\n")
	b.WriteString("### Saúde Financeira Atual\n\n")
	b.WriteString(rep.FinancialHealth)
	b.WriteString("\n\n")

	if rep.Challenge != "" {
		fmt.Fprintf(&b, "**Principal desafio informado:** %s\n\n", escape(rep.Challenge))
	}

	writeItems(&b, "Principais Ineficiências", rep.Inefficiencies)
	writeItems(&b, "Recomendações Práticas", rep.Recommendations)
	writeItems(&b, "Prioridades de Curto Prazo", rep.Priorities)
	writeItems(&b, "Metas Sugeridas", rep.Goals)

	return b.String()
}

func writeItems(b *strings.Builder, title string, items []Item) {
	fmt.Fprintf(b, "### %s\n\n", title)
	for i, it := range items {
		fmt.Fprintf(b, "%d. **%s**\n\n   %s\n\n", i+1, it.Title, it.Description)
		if it.Impact != "" {
			fmt.Fprintf(b, "   **Impacto estimado:** %s\n\n", it.Impact)
		}
		if it.Deadline != "" {
			fmt.Fprintf(b, "   **Prazo sugerido para implementação:** %s\n\n", it.Deadline)
		}
	}
}

// RenderHTML converts the markdown document into a standalone HTML page.
func RenderHTML(in metrics.Input, res metrics.Result, rep Report, generatedAt time.Time) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(in, res, rep, generatedAt)), &body); err != nil {
		return nil, fmt.Errorf("convert report markdown: %w", err)
	}

	var out bytes.Buffer
	err := documentTemplate.Execute(&out, struct {
		Title string
		Body  template.HTML
		Year  int
	}{
		Title: "Análise Financeira - " + res.BusinessName,
		Body:  template.HTML(body.String()),
		Year:  generatedAt.Year(),
	})
	if err != nil {
		return nil, fmt.Errorf("render report document: %w", err)
	}
	return out.Bytes(), nil
}

// HTML converts a markdown fragment, such as Report.FinancialHealth, for display.
// Raw HTML in the source is dropped.
func HTML(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// markdownEscaper neutralizes user text that would otherwise become markup.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "|", `\|`, "<", "&lt;", ">", "&gt;", "#", `\#`, "[", `\[`, "]", `\]`, "`", "\\`",
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
