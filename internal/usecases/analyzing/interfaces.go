package analyzing

import (
	"time"

	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
)

// Analyzer é o motor de análise de períodos: agrega janelas, compara
// tendências e monta o relatório completo de uma execução.
type Analyzer interface {
	// AnalyzeFile carrega o arquivo (ou descobre um no diretório
	// configurado quando path é vazio) e monta o relatório completo
	AnalyzeFile(path string) (*domain.AnalysisReport, error)

	// EnrichedRecords carrega o arquivo e devolve as linhas coagidas com
	// as métricas derivadas por linha, para exportação detalhada
	EnrichedRecords(path string) ([]domain.EnrichedRecord, error)

	// BuildReport monta o relatório a partir de linhas já coagidas
	BuildReport(records []domain.Record, sourceFile string, reference time.Time) *domain.AnalysisReport

	// Aggregate reduz uma janela a totais e métricas derivadas
	Aggregate(records []domain.EnrichedRecord, spec domain.WindowSpec, reference time.Time) *domain.Window
}
