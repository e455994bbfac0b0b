package domain

import "time"

// Nomes das janelas padrão do relatório
const (
	ReportWindowToday       = "today"
	ReportWindowYesterday   = "yesterday"
	ReportWindowTrailing    = "trailing"
	ReportWindowMonthToDate = "month_to_date"
	ReportWindowAllRecords  = "all_records"
)

// AnalysisReport é o relatório completo de uma execução da análise.
// Tudo aqui é recalculado a cada execução a partir da tabela de entrada
// e da data de referência; não há estado persistente entre execuções.
type AnalysisReport struct {
	ID              string             `json:"id"`
	GeneratedAt     time.Time          `json:"generated_at"`
	SourceFile      string             `json:"source_file"`
	ReferenceDate   time.Time          `json:"reference_date"`
	RowCount        int                `json:"row_count"`
	Windows         map[string]*Window `json:"windows"`
	Variation       *Variation         `json:"variation,omitempty"`
	Trend           *PeriodComparison  `json:"trend,omitempty"`
	TopCampaigns    []*CampaignSummary `json:"top_campaigns,omitempty"`
	Recommendations []Recommendation   `json:"recommendations"`
	Projection      *Projection        `json:"projection,omitempty"`
}

// Window devolve a janela nomeada do relatório, ou uma janela vazia
// quando ela não existe, para que quem renderiza nunca precise tratar nil.
func (r *AnalysisReport) Window(name string) *Window {
	if r == nil || r.Windows == nil {
		return &Window{Name: name}
	}

	if w, ok := r.Windows[name]; ok && w != nil {
		return w
	}

	return &Window{Name: name}
}
