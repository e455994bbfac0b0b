package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
)

// NumberResult é o resultado da coerção numérica com fallback. Defaulted
// distingue "zero porque a célula era inválida/ausente" de "zero de
// verdade"; o pipeline trata os dois igual, mas os testes não.
type NumberResult struct {
	Value     float64
	Defaulted bool
}

// ParseNumberOrDefault converte uma célula para float64. Qualquer valor
// que não parseia vira zero, nunca um erro e nunca uma linha descartada.
// A coerção é idempotente.
func ParseNumberOrDefault(raw string) NumberResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NumberResult{Value: 0, Defaulted: true}
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return NumberResult{Value: 0, Defaulted: true}
	}

	if value < 0 {
		// Métricas de anúncio são não-negativas; valor negativo é dado
		// malformado e recebe o mesmo tratamento de célula inválida
		return NumberResult{Value: 0, Defaulted: true}
	}

	return NumberResult{Value: value, Defaulted: false}
}

// Formatos de data aceitos nas exportações do Meta Ads Manager
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2006/01/02",
}

// ParseDateOrNull converte uma célula para data de calendário. Valores
// que não parseiam viram data nula; linhas com data nula ficam fora das
// janelas por calendário mas continuam valendo para o modo posicional.
func ParseDateOrNull(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			date := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &date
		}
	}

	return nil
}

// BuildRecords materializa a tabela crua em Records canônicos usando o
// mapeamento de cabeçalho. Colunas canônicas ausentes na origem resultam
// em colunas inteiras de zeros, nunca em campos faltando.
func BuildRecords(table *Table, mapping HeaderMapping) []domain.Record {
	if table == nil {
		return nil
	}

	numberAt := func(row []string, canonical domain.Canonical) float64 {
		col, ok := mapping[canonical]
		if !ok {
			return 0
		}
		return ParseNumberOrDefault(table.Cell(row, col)).Value
	}

	records := make([]domain.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := domain.Record{
			Spend:       numberAt(row, domain.ColumnSpend),
			Leads:       numberAt(row, domain.ColumnLeads),
			Clicks:      numberAt(row, domain.ColumnClicks),
			Impressions: numberAt(row, domain.ColumnImpressions),
			Reach:       numberAt(row, domain.ColumnReach),
			CPMReported: numberAt(row, domain.ColumnCPM),
			CPCReported: numberAt(row, domain.ColumnCPC),
		}

		if col, ok := mapping[domain.ColumnDate]; ok {
			record.Date = ParseDateOrNull(table.Cell(row, col))
		}

		if col, ok := mapping[domain.ColumnCampaign]; ok {
			record.Campaign = strings.TrimSpace(table.Cell(row, col))
		}

		records = append(records, record)
	}

	return records
}
