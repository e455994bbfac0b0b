package recommending

import (
	"fmt"

	"github.com/ruasdev/meta-ads-analyzer/internal/config"
	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
)

// Níveis de recomendação para o custo por lead
const (
	TierCACTooHigh    = "too_high"
	TierCACHigh       = "high"
	TierCACAcceptable = "acceptable"
	TierCACExcellent  = "excellent"

	TierCTRLow  = "low"
	TierCTRHigh = "high"
)

// Recommender classifica uma janela em recomendações automáticas.
// As classificações são funções puras e sem estado sobre a janela;
// nunca olham para linhas individuais.
type Recommender interface {
	Classify(window *domain.Window) []domain.Recommendation
}

type Service struct {
	thresholds config.Thresholds
}

// NewService cria o classificador com os limites configurados
func NewService(thresholds config.Thresholds) *Service {
	return &Service{thresholds: thresholds}
}

// Classify gera as recomendações da janela, na ordem CAC e depois CTR.
// Classificações indefinidas em denominador zero são suprimidas em vez
// de emitir um nível enganoso: sem leads não há recomendação de CAC e
// sem impressões não há recomendação de CTR.
func (s *Service) Classify(window *domain.Window) []domain.Recommendation {
	if window == nil {
		return nil
	}

	recommendations := make([]domain.Recommendation, 0, 2)

	if rec, ok := s.classifyCostPerLead(window); ok {
		recommendations = append(recommendations, rec)
	}

	if rec, ok := s.classifyCTR(window); ok {
		recommendations = append(recommendations, rec)
	}

	return recommendations
}

func (s *Service) classifyCostPerLead(window *domain.Window) (domain.Recommendation, bool) {
	if window.TotalLeads <= 0 {
		return domain.Recommendation{}, false
	}

	cac := window.CostPerLead
	t := s.thresholds

	switch {
	case cac > t.CACTooHigh:
		return domain.Recommendation{
			Metric:  "cost_per_lead",
			Tier:    TierCACTooHigh,
			Message: fmt.Sprintf("CAC muito alto (> R$ %.0f): reduza o orçamento das campanhas ineficientes e reveja segmentação e criativos", t.CACTooHigh),
		}, true
	case cac > t.CACHigh:
		return domain.Recommendation{
			Metric:  "cost_per_lead",
			Tier:    TierCACHigh,
			Message: fmt.Sprintf("CAC alto (R$ %.0f-%.0f): otimize lances e orçamentos, teste novas audiências e melhore as landing pages", t.CACHigh, t.CACTooHigh),
		}, true
	case cac > t.CACAcceptable:
		return domain.Recommendation{
			Metric:  "cost_per_lead",
			Tier:    TierCACAcceptable,
			Message: fmt.Sprintf("CAC razoável (R$ %.0f-%.0f): mantenha a estratégia atual com pequenos ajustes de otimização", t.CACAcceptable, t.CACHigh),
		}, true
	default:
		return domain.Recommendation{
			Metric:  "cost_per_lead",
			Tier:    TierCACExcellent,
			Message: fmt.Sprintf("CAC excelente (< R$ %.0f): aumente o orçamento e duplique as campanhas vencedoras", t.CACAcceptable),
		}, true
	}
}

func (s *Service) classifyCTR(window *domain.Window) (domain.Recommendation, bool) {
	if window.TotalImpressions <= 0 {
		return domain.Recommendation{}, false
	}

	ctr := window.CTRPercent
	t := s.thresholds

	switch {
	case ctr < t.CTRLow:
		return domain.Recommendation{
			Metric:  "ctr_percent",
			Tier:    TierCTRLow,
			Message: fmt.Sprintf("CTR baixo (< %.0f%%): teste novos criativos, melhore copy e headlines e ajuste a segmentação", t.CTRLow),
		}, true
	case ctr > t.CTRHigh:
		return domain.Recommendation{
			Metric:  "ctr_percent",
			Tier:    TierCTRHigh,
			Message: fmt.Sprintf("CTR alto (> %.0f%%): criativos funcionando bem, mantenha ou teste variações", t.CTRHigh),
		}, true
	default:
		// Faixa neutra: só valores fora da banda geram mensagem
		return domain.Recommendation{}, false
	}
}
