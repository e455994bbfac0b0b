package domain

// WindowKind identifica o tipo de janela de análise
type WindowKind string

const (
	WindowToday       WindowKind = "today"
	WindowYesterday   WindowKind = "yesterday"
	WindowTrailing    WindowKind = "trailing_days"
	WindowMonthToDate WindowKind = "month_to_date"
	WindowAllRecords  WindowKind = "all_records"
)

// WindowSpec descreve uma janela de análise. Days só é usado por
// WindowTrailing. A seleção é por calendário quando as linhas têm data;
// quando nenhuma linha tem data válida, cai no modo posicional degradado
// (Yesterday → última linha; TrailingDays(n) → últimas n linhas;
// MonthToDate/AllRecords → todas; Today → nenhuma).
//
// A janela Trailing aplica apenas o limite inferior
// (date >= referência - n dias): linhas com data futura entram em
// qualquer janela trailing.
type WindowSpec struct {
	Kind WindowKind
	Days int
}

// TrailingDays cria a especificação de uma janela dos últimos n dias
func TrailingDays(n int) WindowSpec {
	return WindowSpec{Kind: WindowTrailing, Days: n}
}

// Window é o resultado da redução de uma janela: totais somados sobre as
// linhas selecionadas e métricas derivadas recalculadas a partir dos
// totais (nunca como média das razões por linha, que enviesaria para
// linhas de baixo volume).
type Window struct {
	Name                  string  `json:"name"`
	DayCount              int     `json:"day_count"`
	TotalSpend            float64 `json:"total_spend"`
	TotalLeads            float64 `json:"total_leads"`
	TotalClicks           float64 `json:"total_clicks"`
	TotalImpressions      float64 `json:"total_impressions"`
	CostPerLead           float64 `json:"cost_per_lead"`
	CTRPercent            float64 `json:"ctr_percent"`
	ConversionRatePercent float64 `json:"conversion_rate_percent"`
	DailyAvgSpend         float64 `json:"daily_avg_spend"`
	DailyAvgLeads         float64 `json:"daily_avg_leads"`
}

// IsEmpty informa se a janela não selecionou nenhuma linha
func (w Window) IsEmpty() bool {
	return w.DayCount == 0
}

// TrendDirection indica a direção de variação entre janelas adjacentes
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// PeriodComparison compara duas janelas adjacentes e não sobrepostas.
// O percentual de variação do custo por lead é zero quando a janela
// anterior não tem custo por lead definido.
type PeriodComparison struct {
	Recent                   Window         `json:"recent"`
	Prior                    Window         `json:"prior"`
	CostPerLeadChangePercent float64        `json:"cost_per_lead_change_percent"`
	Direction                TrendDirection `json:"direction"`
}

// Variation compara a janela de hoje com a de ontem
type Variation struct {
	LeadsPercent    float64 `json:"leads_percent"`
	CostPerLeadDiff float64 `json:"cost_per_lead_diff"`
	SpendDiff       float64 `json:"spend_diff"`
}

// Recommendation é uma recomendação automática gerada a partir de uma janela
type Recommendation struct {
	Metric  string `json:"metric"`
	Tier    string `json:"tier"`
	Message string `json:"message"`
}

// Projection é a projeção linear ingênua de 30 dias a partir da média
// diária de uma janela. É uma extrapolação simples, não uma previsão.
type Projection struct {
	ProjectedLeads       float64 `json:"projected_leads"`
	ProjectedSpend       float64 `json:"projected_spend"`
	ProjectedCostPerLead float64 `json:"projected_cost_per_lead"`
}

// CampaignSummary agrega as linhas de uma mesma campanha
type CampaignSummary struct {
	Campaign    string  `json:"campaign"`
	TotalSpend  float64 `json:"total_spend"`
	TotalLeads  float64 `json:"total_leads"`
	TotalClicks float64 `json:"total_clicks"`
	CostPerLead float64 `json:"cost_per_lead"`
}
