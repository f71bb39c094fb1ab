package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Simplici0/dogsclub/internal/metrics"
)

// shiftHours is the paid hours per employee per day used to price idle time.
const shiftHours = 8

// Item is one entry of a report section.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

// Report is the narrative analysis of one Result.
type Report struct {
	ID              string       `json:"id"`
	FinancialHealth string       `json:"financial_health"`
	Challenge       string       `json:"challenge,omitempty"`
	Inefficiencies  []Item       `json:"inefficiencies"`
	Recommendations []Item       `json:"recommendations"`
	Priorities      []Item       `json:"priorities"`
	Goals           []Item       `json:"goals"`
	Benchmarks      []Comparison `json:"benchmarks"`
}

// Build writes the financial report for res. Text is in Portuguese and may
// contain markdown emphasis.
func Build(in metrics.Input, res metrics.Result) Report {
	return Report{
		ID:              uuid.NewString(),
		FinancialHealth: financialHealth(res),
		Challenge:       in.Challenge,
		Inefficiencies:  inefficiencies(res),
		Recommendations: recommendations(res),
		Priorities:      priorities(),
		Goals:           goals(res),
		Benchmarks:      Compare(res),
	}
}

func financialHealth(res metrics.Result) string {
	margin := metrics.Benchmarks.ProfitMargin
	pos := margin.Position(res.ProfitMargin)

	assessment := "requer atenção"
	switch pos {
	case metrics.Within:
		assessment = "é estável"
	case metrics.Above:
		assessment = "é sólida"
	}

	usage := "utilização adequada da capacidade"
	if res.UtilizationPercent < metrics.Benchmarks.Occupancy.Min {
		usage = "subutilização significativa dos recursos"
	}
	outcome := "otimização"
	if res.UnrealizedRevenue > 0 {
		outcome = "perda"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "O **%s** apresenta uma saúde financeira que %s. ", escape(res.BusinessName), assessment)
	fmt.Fprintf(&b, "Com faturamento mensal de **%s** e lucratividade de **%s**, ",
		FormatCurrency(res.CurrentRevenue), FormatPercent(res.ProfitMargin))
	fmt.Fprintf(&b, "o negócio está %s da média do setor, que fica entre %.0f%% e %.0f%%.\n\n",
		positionWord(pos), margin.Min, margin.Max)
	fmt.Fprintf(&b, "A taxa de ocupação de %s indica uma %s, ", FormatPercent(res.UtilizationPercent), usage)
	fmt.Fprintf(&b, "resultando em %s potencial de **%s** mensais ou aproximadamente **%s** anuais.",
		outcome, FormatCurrency(res.UnrealizedRevenue), FormatCurrency(res.UnrealizedRevenue*12))
	return b.String()
}

func inefficiencies(res metrics.Result) []Item {
	unused := max(0, res.IdealMonthlyCapacity-res.CurrentServices)

	days := res.Assumptions.BaselineWorkingDays
	if days <= 0 {
		days = metrics.DefaultAssumptions().BaselineWorkingDays
	}
	idleCost := res.IdleHoursPerDay * (res.PersonnelExpense / days / shiftHours)

	personnel := metrics.Benchmarks.PersonnelShare.Position(res.PersonnelShare)

	return []Item{
		{
			Title: "Subutilização da Capacidade",
			Description: fmt.Sprintf("O petshop opera a apenas %s da capacidade ideal, deixando de realizar %d atendimentos mensais.",
				FormatPercent(res.UtilizationPercent), unused),
		},
		{
			Title: "Proporção de Custos com Pessoal",
			Description: fmt.Sprintf("A proporção de despesas com pessoal é de %s, %s da média do setor.",
				FormatPercent(res.PersonnelShare), positionWord(personnel)),
		},
		{
			Title: "Tempo Ocioso",
			Description: fmt.Sprintf("São perdidas aproximadamente %.1f horas diárias de mão de obra, o que representa um custo de ociosidade de aproximadamente %s por dia.",
				res.IdleHoursPerDay, FormatCurrency(idleCost)),
		},
	}
}

func recommendations(res metrics.Result) []Item {
	return []Item{
		{
			Title:       "Implementar Estratégia de Marketing Direcionada",
			Description: "Desenvolva promoções para dias e horários de baixa demanda. Implemente um programa de fidelidade para aumentar a recorrência de clientes.",
			Impact: fmt.Sprintf("Aumento potencial de 15-20%% no número de atendimentos, gerando aproximadamente %s adicionais por mês.",
				FormatCurrency(res.CurrentRevenue*0.15)),
			Deadline: "3 meses",
		},
		{
			Title:       "Otimizar Estrutura de Custos",
			Description: "Renegocie contratos com fornecedores de produtos para banho e tosa. Implemente controle de estoque mais rigoroso para reduzir desperdícios.",
			Impact: fmt.Sprintf("Redução de 10-15%% nos custos variáveis, economia de aproximadamente %s mensais.",
				FormatCurrency(res.VariableCost*0.12)),
			Deadline: "2 meses",
		},
		{
			Title:       "Aumentar Ticket Médio",
			Description: "Ofereça serviços complementares de maior valor agregado. Treine a equipe para realizar venda cruzada de produtos e serviços.",
			Impact: fmt.Sprintf("Aumento de 10-20%% no ticket médio, gerando receita adicional de %s mensais.",
				FormatCurrency(res.CurrentRevenue*0.15)),
			Deadline: "3 meses",
		},
	}
}

func priorities() []Item {
	return []Item{
		{
			Title:       "Análise de Horários de Pico",
			Description: "Identifique os horários e dias com menor ocupação e crie promoções específicas para esses períodos.",
		},
		{
			Title:       "Revisão de Preços e Serviços",
			Description: "Ajuste a tabela de preços de acordo com a demanda e posicionamento de mercado. Crie pacotes de serviços para aumentar o ticket médio.",
		},
		{
			Title:       "Campanha de Reativação",
			Description: "Entre em contato com clientes inativos oferecendo condições especiais para retorno.",
		},
	}
}

func goals(res metrics.Result) []Item {
	return []Item{
		{
			Title: "Aumento da Taxa de Ocupação",
			Description: fmt.Sprintf("Elevar a taxa de ocupação atual de %s para pelo menos 75%% em 3 meses.",
				FormatPercent(res.UtilizationPercent)),
		},
		{
			Title: "Melhoria da Margem de Lucro",
			Description: fmt.Sprintf("Aumentar a margem de lucro de %s para %s em 3 meses.",
				FormatPercent(res.ProfitMargin), FormatPercent(math.Min(res.ProfitMargin+5, 25))),
		},
		{
			Title: "Redução de Custos Variáveis",
			Description: fmt.Sprintf("Reduzir a proporção de custos com produtos de %s para %s em 2 meses.",
				FormatPercent(res.SuppliesShare), FormatPercent(math.Max(res.SuppliesShare-5, 15))),
		},
	}
}
