package dataset

import (
	"strings"

	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
	"github.com/sirupsen/logrus"
)

// headerRule é um par (predicado, coluna canônica). As regras são
// avaliadas em ordem e a primeira que casar vence para aquela coluna;
// a ordem é significativa porque resolve sinônimos sobrepostos de forma
// determinística (ex.: "Data de criação" casa com date antes de campaign).
type headerRule struct {
	matches   func(lower string) bool
	canonical domain.Canonical
}

func containsAny(substrings ...string) func(string) bool {
	return func(lower string) bool {
		for _, s := range substrings {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

func exactly(name string) func(string) bool {
	return func(lower string) bool {
		return lower == name
	}
}

// Tabela de sinônimos: aceita cabeçalhos em português e inglês
// exportados do Meta Ads Manager.
var headerRules = []headerRule{
	{containsAny("date", "data"), domain.ColumnDate},
	{containsAny("camp"), domain.ColumnCampaign},
	{containsAny("spend", "gasto", "amount", "custo"), domain.ColumnSpend},
	{containsAny("lead", "result", "convers"), domain.ColumnLeads},
	{containsAny("click", "clique"), domain.ColumnClicks},
	{containsAny("impress"), domain.ColumnImpressions},
	{containsAny("reach", "alcance"), domain.ColumnReach},
	{exactly("cpm"), domain.ColumnCPM},
	{exactly("cpc"), domain.ColumnCPC},
}

// CanonicalFor mapeia um nome de coluna de origem para o nome canônico.
// A comparação ignora maiúsculas e espaços nas bordas. Colunas que não
// casam com nenhuma regra ficam sem mapeamento e fora da coerção numérica.
func CanonicalFor(header string) (domain.Canonical, bool) {
	lower := strings.ToLower(strings.TrimSpace(header))
	for _, rule := range headerRules {
		if rule.matches(lower) {
			return rule.canonical, true
		}
	}
	return "", false
}

// HeaderMapping associa cada coluna canônica ao índice da coluna de
// origem que a alimenta.
type HeaderMapping map[domain.Canonical]int

// NormalizeHeaders constrói o mapeamento canônico do cabeçalho.
//
// Quando duas colunas de origem mapeiam para o mesmo nome canônico, a
// última vence (last-wins). É uma ambiguidade conhecida e deliberadamente
// preservada, não uma política garantidamente correta.
func NormalizeHeaders(headers []string) HeaderMapping {
	mapping := make(HeaderMapping)

	for i, header := range headers {
		canonical, ok := CanonicalFor(header)
		if !ok {
			logrus.WithField("column", header).Debug("Coluna sem mapeamento canônico, ignorada na coerção")
			continue
		}

		if prev, exists := mapping[canonical]; exists {
			logrus.WithFields(logrus.Fields{
				"canonical":       string(canonical),
				"previous_column": headers[prev],
				"winning_column":  header,
			}).Warn("Múltiplas colunas mapeiam para o mesmo nome canônico, a última vence")
		}

		mapping[canonical] = i
	}

	return mapping
}
