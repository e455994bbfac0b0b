package analyzing

import (
	"fmt"
	"sort"
	"time"

	"github.com/ruasdev/meta-ads-analyzer/infrastructure/dataset"
	"github.com/ruasdev/meta-ads-analyzer/internal/config"
	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
	"github.com/ruasdev/meta-ads-analyzer/internal/usecases/recommending"
	"github.com/ruasdev/meta-ads-analyzer/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Service implementa a interface Analyzer
type Service struct {
	cfg         *config.Config
	loader      dataset.Loader
	recommender recommending.Recommender
}

// NewService cria uma nova instância do serviço de análise
func NewService(cfg *config.Config, loader dataset.Loader, recommender recommending.Recommender) Analyzer {
	return &Service{
		cfg:         cfg,
		loader:      loader,
		recommender: recommender,
	}
}

// AnalyzeFile carrega os dados e monta o relatório completo. A única
// falha possível é a ausência de arquivo legível; qualquer anomalia de
// célula já foi degradada para zero/nulo pela coerção.
func (s *Service) AnalyzeFile(path string) (*domain.AnalysisReport, error) {
	if path == "" {
		discovered, err := s.loader.Discover(s.cfg.Analysis.InputDir)
		if err != nil {
			return nil, err
		}
		path = discovered
	}

	records, err := s.loader.LoadRecords(path)
	if err != nil {
		return nil, err
	}

	report := s.BuildReport(records, path, s.cfg.ReferenceDate())

	logrus.WithFields(logrus.Fields{
		"report_id":  report.ID,
		"source":     path,
		"rows":       report.RowCount,
		"reference":  report.ReferenceDate.Format(time.DateOnly),
		"total_cost": report.Window(domain.ReportWindowAllRecords).TotalSpend,
	}).Info("Relatório de análise gerado")

	return report, nil
}

// EnrichedRecords carrega o arquivo e devolve as linhas com as métricas
// derivadas por linha
func (s *Service) EnrichedRecords(path string) ([]domain.EnrichedRecord, error) {
	if path == "" {
		discovered, err := s.loader.Discover(s.cfg.Analysis.InputDir)
		if err != nil {
			return nil, err
		}
		path = discovered
	}

	records, err := s.loader.LoadRecords(path)
	if err != nil {
		return nil, err
	}

	return domain.EnrichRecords(records), nil
}

// BuildReport monta o relatório completo a partir das linhas coagidas.
// É uma função pura da tabela e da data de referência: duas execuções
// com a mesma entrada produzem o mesmo resultado (exceto ID e horário
// de geração).
func (s *Service) BuildReport(records []domain.Record, sourceFile string, reference time.Time) *domain.AnalysisReport {
	enriched := domain.EnrichRecords(records)

	trailingDays := s.cfg.Analysis.TrailingDays
	today := s.Aggregate(enriched, domain.WindowSpec{Kind: domain.WindowToday}, reference)
	yesterday := s.Aggregate(enriched, domain.WindowSpec{Kind: domain.WindowYesterday}, reference)
	trailing := s.Aggregate(enriched, domain.TrailingDays(trailingDays), reference)
	monthToDate := s.Aggregate(enriched, domain.WindowSpec{Kind: domain.WindowMonthToDate}, reference)
	allRecords := s.Aggregate(enriched, domain.WindowSpec{Kind: domain.WindowAllRecords}, reference)

	report := &domain.AnalysisReport{
		ID:            utils.NewRunID(),
		GeneratedAt:   time.Now(),
		SourceFile:    sourceFile,
		ReferenceDate: reference,
		RowCount:      len(records),
		Windows: map[string]*domain.Window{
			domain.ReportWindowToday:       today,
			domain.ReportWindowYesterday:   yesterday,
			domain.ReportWindowTrailing:    trailing,
			domain.ReportWindowMonthToDate: monthToDate,
			domain.ReportWindowAllRecords:  allRecords,
		},
		Variation:    compareVariation(today, yesterday),
		Trend:        s.CompareAdjacent(enriched, s.cfg.Analysis.TrendWindowSize),
		TopCampaigns: topCampaigns(enriched, s.cfg.Analysis.TopCampaigns),
	}

	// Recomendações e projeção usam a janela dos últimos N dias
	report.Recommendations = s.recommender.Classify(trailing)

	if !trailing.IsEmpty() {
		report.Projection = &domain.Projection{
			ProjectedLeads:       trailing.DailyAvgLeads * float64(s.cfg.Analysis.ProjectionDays),
			ProjectedSpend:       trailing.DailyAvgSpend * float64(s.cfg.Analysis.ProjectionDays),
			ProjectedCostPerLead: trailing.CostPerLead,
		}
	}

	return report
}

// Aggregate seleciona as linhas da janela e as reduz a totais. As
// métricas derivadas são recalculadas a partir dos totais, nunca como
// média das razões por linha. Janela vazia produz agregado todo zero,
// nunca erro.
func (s *Service) Aggregate(records []domain.EnrichedRecord, spec domain.WindowSpec, reference time.Time) *domain.Window {
	selected, byCalendar := selectWindow(records, spec, reference)
	return reduce(windowName(spec), selected, byCalendar)
}

// CompareAdjacent compara as últimas n linhas com as n anteriores
// (janelas posicionais adjacentes e não sobrepostas). Retorna nil quando
// a tabela não tem 2n linhas.
func (s *Service) CompareAdjacent(records []domain.EnrichedRecord, n int) *domain.PeriodComparison {
	if n <= 0 || len(records) < 2*n {
		return nil
	}

	recent := reduce(fmt.Sprintf("last_%d_rows", n), records[len(records)-n:], false)
	prior := reduce(fmt.Sprintf("previous_%d_rows", n), records[len(records)-2*n:len(records)-n], false)

	changePercent := 0.0
	if prior.CostPerLead > 0 {
		changePercent = (recent.CostPerLead - prior.CostPerLead) / prior.CostPerLead * 100
	}

	direction := domain.TrendFlat
	switch {
	case changePercent > 0:
		direction = domain.TrendUp
	case changePercent < 0:
		direction = domain.TrendDown
	}

	return &domain.PeriodComparison{
		Recent:                   *recent,
		Prior:                    *prior,
		CostPerLeadChangePercent: changePercent,
		Direction:                direction,
	}
}

// selectWindow filtra as linhas da janela. Com ao menos uma data válida
// na tabela a seleção é por calendário (linhas sem data ficam fora das
// janelas datadas); sem nenhuma data válida, cai no modo posicional
// degradado para entradas malformadas.
func selectWindow(records []domain.EnrichedRecord, spec domain.WindowSpec, reference time.Time) ([]domain.EnrichedRecord, bool) {
	hasDates := false
	for _, record := range records {
		if record.HasDate() {
			hasDates = true
			break
		}
	}

	if !hasDates {
		return selectPositional(records, spec), false
	}

	if spec.Kind == domain.WindowAllRecords {
		return records, true
	}

	var include func(date time.Time) bool

	switch spec.Kind {
	case domain.WindowToday:
		include = func(date time.Time) bool { return sameDay(date, reference) }
	case domain.WindowYesterday:
		dayBefore := reference.AddDate(0, 0, -1)
		include = func(date time.Time) bool { return sameDay(date, dayBefore) }
	case domain.WindowTrailing:
		cutoff := reference.AddDate(0, 0, -spec.Days)
		include = func(date time.Time) bool { return !date.Before(cutoff) }
	case domain.WindowMonthToDate:
		firstOfMonth := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
		include = func(date time.Time) bool { return !date.Before(firstOfMonth) }
	default:
		return nil, true
	}

	selected := make([]domain.EnrichedRecord, 0)
	for _, record := range records {
		if record.HasDate() && include(*record.Date) {
			selected = append(selected, record)
		}
	}

	return selected, true
}

// selectPositional é o fallback para tabelas sem nenhuma data válida
func selectPositional(records []domain.EnrichedRecord, spec domain.WindowSpec) []domain.EnrichedRecord {
	switch spec.Kind {
	case domain.WindowToday:
		// Sem datas não há como saber o que é "hoje"
		return nil
	case domain.WindowYesterday:
		if len(records) == 0 {
			return nil
		}
		return records[len(records)-1:]
	case domain.WindowTrailing:
		if spec.Days >= len(records) {
			return records
		}
		return records[len(records)-spec.Days:]
	default:
		return records
	}
}

// reduce soma os totais das linhas selecionadas e recalcula as métricas
// derivadas a partir dos totais. O day_count é a contagem de datas
// distintas quando a seleção foi por calendário e a contagem de linhas
// no modo posicional.
func reduce(name string, selected []domain.EnrichedRecord, byCalendar bool) *domain.Window {
	window := &domain.Window{Name: name}

	distinctDates := make(map[string]bool)

	for _, record := range selected {
		window.TotalSpend += record.Spend
		window.TotalLeads += record.Leads
		window.TotalClicks += record.Clicks
		window.TotalImpressions += record.Impressions

		if record.HasDate() {
			distinctDates[record.Date.Format(time.DateOnly)] = true
		}
	}

	if byCalendar {
		window.DayCount = len(distinctDates)
	} else {
		window.DayCount = len(selected)
	}

	if window.TotalLeads > 0 {
		window.CostPerLead = window.TotalSpend / window.TotalLeads
	}

	if window.TotalImpressions > 0 {
		window.CTRPercent = (window.TotalClicks / window.TotalImpressions) * 100
	}

	if window.TotalClicks > 0 {
		window.ConversionRatePercent = (window.TotalLeads / window.TotalClicks) * 100
	}

	if window.DayCount > 0 {
		window.DailyAvgSpend = window.TotalSpend / float64(window.DayCount)
		window.DailyAvgLeads = window.TotalLeads / float64(window.DayCount)
	}

	return window
}

// compareVariation compara hoje com ontem. Caso especial: ontem sem
// leads e hoje com leads reporta +100%.
func compareVariation(today, yesterday *domain.Window) *domain.Variation {
	if today == nil || yesterday == nil {
		return nil
	}

	leadsPercent := 0.0
	if yesterday.TotalLeads > 0 {
		leadsPercent = (today.TotalLeads - yesterday.TotalLeads) / yesterday.TotalLeads * 100
	} else if today.TotalLeads > 0 {
		leadsPercent = 100
	}

	return &domain.Variation{
		LeadsPercent:    leadsPercent,
		CostPerLeadDiff: today.CostPerLead - yesterday.CostPerLead,
		SpendDiff:       today.TotalSpend - yesterday.TotalSpend,
	}
}

// topCampaigns agrupa as linhas por campanha, ordena por leads e devolve
// as melhores. O CAC de cada campanha sai dos totais do grupo.
func topCampaigns(records []domain.EnrichedRecord, limit int) []*domain.CampaignSummary {
	if limit <= 0 {
		return nil
	}

	byName := make(map[string]*domain.CampaignSummary)
	for _, record := range records {
		if record.Campaign == "" {
			continue
		}

		summary, exists := byName[record.Campaign]
		if !exists {
			summary = &domain.CampaignSummary{Campaign: record.Campaign}
			byName[record.Campaign] = summary
		}

		summary.TotalSpend += record.Spend
		summary.TotalLeads += record.Leads
		summary.TotalClicks += record.Clicks
	}

	summaries := make([]*domain.CampaignSummary, 0, len(byName))
	for _, summary := range byName {
		if summary.TotalLeads > 0 {
			summary.CostPerLead = summary.TotalSpend / summary.TotalLeads
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalLeads != summaries[j].TotalLeads {
			return summaries[i].TotalLeads > summaries[j].TotalLeads
		}
		return summaries[i].Campaign < summaries[j].Campaign
	})

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}

	return summaries
}

// windowName dá o nome estável da janela no relatório
func windowName(spec domain.WindowSpec) string {
	switch spec.Kind {
	case domain.WindowToday:
		return domain.ReportWindowToday
	case domain.WindowYesterday:
		return domain.ReportWindowYesterday
	case domain.WindowTrailing:
		return fmt.Sprintf("last_%d_days", spec.Days)
	case domain.WindowMonthToDate:
		return domain.ReportWindowMonthToDate
	default:
		return domain.ReportWindowAllRecords
	}
}

// sameDay compara apenas ano, mês e dia
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
