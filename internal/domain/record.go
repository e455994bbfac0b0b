package domain

import "time"

// Canonical identifica uma coluna canônica da planilha de anúncios.
type Canonical string

const (
	ColumnDate        Canonical = "date"
	ColumnCampaign    Canonical = "campaign"
	ColumnSpend       Canonical = "spend"
	ColumnLeads       Canonical = "leads"
	ColumnClicks      Canonical = "clicks"
	ColumnImpressions Canonical = "impressions"
	ColumnReach       Canonical = "reach"
	ColumnCPM         Canonical = "cpm_reported"
	ColumnCPC         Canonical = "cpc_reported"
)

// Record representa uma linha da planilha exportada do Meta Ads,
// já com as colunas canônicas coagidas para os tipos corretos.
// Colunas numéricas ausentes ou inválidas valem zero, nunca faltam.
type Record struct {
	Date        *time.Time `json:"date,omitempty"`
	Campaign    string     `json:"campaign,omitempty"`
	Spend       float64    `json:"spend"`
	Leads       float64    `json:"leads"`
	Clicks      float64    `json:"clicks"`
	Impressions float64    `json:"impressions"`

	// Colunas repassadas sem transformação quando presentes na origem
	Reach       float64 `json:"reach,omitempty"`
	CPMReported float64 `json:"cpm_reported,omitempty"`
	CPCReported float64 `json:"cpc_reported,omitempty"`
}

// HasDate informa se a linha possui uma data válida
func (r Record) HasDate() bool {
	return r.Date != nil
}

// EnrichedRecord é um Record acrescido das métricas derivadas por linha.
// Os campos derivados são função pura dos campos numéricos do Record e
// são sempre recalculados, nunca persistidos.
type EnrichedRecord struct {
	Record
	CostPerLead           float64 `json:"cost_per_lead"`
	CTRPercent            float64 `json:"ctr_percent"`
	ConversionRatePercent float64 `json:"conversion_rate_percent"`
}

// Enrich calcula as métricas derivadas da linha com divisões protegidas:
// denominador zero resulta em métrica zero, nunca em erro.
func (r Record) Enrich() EnrichedRecord {
	enriched := EnrichedRecord{Record: r}

	if r.Leads > 0 {
		enriched.CostPerLead = r.Spend / r.Leads
	}

	if r.Impressions > 0 {
		enriched.CTRPercent = (r.Clicks / r.Impressions) * 100
	}

	if r.Clicks > 0 {
		enriched.ConversionRatePercent = (r.Leads / r.Clicks) * 100
	}

	return enriched
}

// EnrichRecords enriquece todas as linhas da tabela
func EnrichRecords(records []Record) []EnrichedRecord {
	enriched := make([]EnrichedRecord, 0, len(records))
	for _, record := range records {
		enriched = append(enriched, record.Enrich())
	}
	return enriched
}
