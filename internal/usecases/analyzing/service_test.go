package analyzing

import (
	"testing"
	"time"

	"github.com/ruasdev/meta-ads-analyzer/infrastructure/dataset"
	"github.com/ruasdev/meta-ads-analyzer/infrastructure/dataset/mocks"
	"github.com/ruasdev/meta-ads-analyzer/internal/config"
	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
	"github.com/ruasdev/meta-ads-analyzer/internal/usecases/recommending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Data de referência fixa dos testes: 16 de janeiro de 2024
var reference = time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Analysis: config.Analysis{
			TrailingDays:    7,
			TrendWindowSize: 3,
			ProjectionDays:  30,
			TopCampaigns:    5,
		},
		Thresholds: config.Thresholds{
			CACTooHigh:    80,
			CACHigh:       50,
			CACAcceptable: 20,
			CTRLow:        1,
			CTRHigh:       3,
		},
	}
}

func testService(loader dataset.Loader) *Service {
	cfg := testConfig()
	return &Service{
		cfg:         cfg,
		loader:      loader,
		recommender: recommending.NewService(cfg.Thresholds),
	}
}

func day(daysAgo int) *time.Time {
	date := reference.AddDate(0, 0, -daysAgo)
	return &date
}

func datedRecord(daysAgo int, spend, leads float64) domain.Record {
	return domain.Record{Date: day(daysAgo), Spend: spend, Leads: leads}
}

func TestService_Aggregate_JanelasPorCalendario(t *testing.T) {
	service := testService(nil)

	records := domain.EnrichRecords([]domain.Record{
		datedRecord(0, 100, 10), // hoje
		datedRecord(1, 80, 4),   // ontem
		datedRecord(3, 50, 5),
		datedRecord(10, 200, 8), // fora dos últimos 7 dias
	})

	t.Run("Hoje seleciona apenas a data de referência", func(t *testing.T) {
		window := service.Aggregate(records, domain.WindowSpec{Kind: domain.WindowToday}, reference)

		assert.Equal(t, 1, window.DayCount)
		assert.Equal(t, 100.0, window.TotalSpend)
		assert.Equal(t, 10.0, window.TotalLeads)
	})

	t.Run("Ontem seleciona o dia anterior", func(t *testing.T) {
		window := service.Aggregate(records, domain.WindowSpec{Kind: domain.WindowYesterday}, reference)

		assert.Equal(t, 80.0, window.TotalSpend)
		assert.Equal(t, 4.0, window.TotalLeads)
	})

	t.Run("Últimos 7 dias aplicam apenas o limite inferior", func(t *testing.T) {
		window := service.Aggregate(records, domain.TrailingDays(7), reference)

		assert.Equal(t, 3, window.DayCount)
		assert.Equal(t, 230.0, window.TotalSpend)
		assert.Equal(t, 19.0, window.TotalLeads)
	})

	t.Run("Mês até a data começa no dia primeiro", func(t *testing.T) {
		window := service.Aggregate(records, domain.WindowSpec{Kind: domain.WindowMonthToDate}, reference)

		// 10 dias atrás é 6 de janeiro, ainda dentro do mês
		assert.Equal(t, 4, window.DayCount)
		assert.Equal(t, 430.0, window.TotalSpend)
	})

	t.Run("Todo o período seleciona tudo", func(t *testing.T) {
		window := service.Aggregate(records, domain.WindowSpec{Kind: domain.WindowAllRecords}, reference)

		assert.Equal(t, 430.0, window.TotalSpend)
		assert.Equal(t, 27.0, window.TotalLeads)
	})
}

func TestService_Aggregate_MetricasExatasDosTotais(t *testing.T) {
	service := testService(nil)

	// As métricas derivadas saem dos totais, sem arredondamento
	records := domain.EnrichRecords([]domain.Record{
		{Date: day(0), Spend: 250, Leads: 25, Clicks: 100, Impressions: 4000},
		{Date: day(1), Spend: 300, Leads: 30, Clicks: 150, Impressions: 6000},
	})

	window := service.Aggregate(records, domain.TrailingDays(7), reference)

	assert.Equal(t, 550.0, window.TotalSpend)
	assert.Equal(t, 55.0, window.TotalLeads)
	assert.Equal(t, window.TotalSpend/window.TotalLeads, window.CostPerLead)
	assert.Equal(t, 10.0, window.CostPerLead)
	assert.Equal(t, 2.5, window.CTRPercent)
	assert.Equal(t, 22.0, window.ConversionRatePercent)
}

func TestService_Aggregate_JanelaVazia(t *testing.T) {
	service := testService(nil)

	records := domain.EnrichRecords([]domain.Record{
		datedRecord(30, 100, 5), // muito antiga para qualquer janela curta
	})

	window := service.Aggregate(records, domain.WindowSpec{Kind: domain.WindowToday}, reference)

	assert.True(t, window.IsEmpty())
	assert.Equal(t, 0.0, window.TotalSpend)
	assert.Equal(t, 0.0, window.CostPerLead)
	assert.Equal(t, 0.0, window.DailyAvgSpend)
}

func TestService_Aggregate_DayCountPorDatasDistintas(t *testing.T) {
	service := testService(nil)

	// Duas campanhas no mesmo dia contam um único dia
	records := domain.EnrichRecords([]domain.Record{
		{Date: day(0), Campaign: "A", Spend: 60, Leads: 3},
		{Date: day(0), Campaign: "B", Spend: 40, Leads: 2},
		{Date: day(1), Campaign: "A", Spend: 100, Leads: 5},
	})

	window := service.Aggregate(records, domain.TrailingDays(7), reference)

	assert.Equal(t, 2, window.DayCount)
	assert.Equal(t, 100.0, window.DailyAvgSpend)
	assert.Equal(t, 5.0, window.DailyAvgLeads)
}

func TestService_Aggregate_FallbackPosicional(t *testing.T) {
	service := testService(nil)

	// Nenhuma linha tem data válida
	records := domain.EnrichRecords([]domain.Record{
		{Spend: 10, Leads: 1},
		{Spend: 20, Leads: 2},
		{Spend: 30, Leads: 3},
		{Spend: 40, Leads: 4},
	})

	t.Run("Hoje não seleciona nada", func(t *testing.T) {
		window := service.Aggregate(records, domain.WindowSpec{Kind: domain.WindowToday}, reference)
		assert.True(t, window.IsEmpty())
	})

	t.Run("Ontem seleciona a última linha", func(t *testing.T) {
		window := service.Aggregate(records, domain.WindowSpec{Kind: domain.WindowYesterday}, reference)
		assert.Equal(t, 40.0, window.TotalSpend)
		assert.Equal(t, 1, window.DayCount)
	})

	t.Run("Janela de n dias seleciona as últimas n linhas", func(t *testing.T) {
		window := service.Aggregate(records, domain.TrailingDays(2), reference)
		assert.Equal(t, 70.0, window.TotalSpend)
		assert.Equal(t, 2, window.DayCount)
	})

	t.Run("Janela maior que a tabela seleciona tudo", func(t *testing.T) {
		window := service.Aggregate(records, domain.TrailingDays(10), reference)
		assert.Equal(t, 100.0, window.TotalSpend)
		assert.Equal(t, 4, window.DayCount)
	})

	t.Run("Todo o período seleciona tudo", func(t *testing.T) {
		window := service.Aggregate(records, domain.WindowSpec{Kind: domain.WindowAllRecords}, reference)
		assert.Equal(t, 100.0, window.TotalSpend)
	})
}

func TestService_Aggregate_LinhasSemDataForaDasJanelasDatadas(t *testing.T) {
	service := testService(nil)

	// Com ao menos uma data válida, a seleção é por calendário e as linhas
	// sem data ficam fora das janelas datadas
	records := domain.EnrichRecords([]domain.Record{
		datedRecord(0, 100, 10),
		{Spend: 999, Leads: 99},
	})

	window := service.Aggregate(records, domain.WindowSpec{Kind: domain.WindowToday}, reference)

	assert.Equal(t, 100.0, window.TotalSpend)
	assert.Equal(t, 10.0, window.TotalLeads)
}

func TestService_CompareAdjacent(t *testing.T) {
	service := testService(nil)

	t.Run("CAC caindo entre as janelas indica tendência de queda", func(t *testing.T) {
		records := domain.EnrichRecords([]domain.Record{
			{Spend: 100, Leads: 2}, // CAC 50
			{Spend: 100, Leads: 2},
			{Spend: 100, Leads: 2},
			{Spend: 100, Leads: 4}, // CAC 25
			{Spend: 100, Leads: 4},
			{Spend: 100, Leads: 4},
		})

		comparison := service.CompareAdjacent(records, 3)
		require.NotNil(t, comparison)

		assert.Equal(t, 50.0, comparison.Prior.CostPerLead)
		assert.Equal(t, 25.0, comparison.Recent.CostPerLead)
		assert.Equal(t, -50.0, comparison.CostPerLeadChangePercent)
		assert.Equal(t, domain.TrendDown, comparison.Direction)
	})

	t.Run("CAC subindo indica tendência de alta", func(t *testing.T) {
		records := domain.EnrichRecords([]domain.Record{
			{Spend: 100, Leads: 4},
			{Spend: 100, Leads: 4},
			{Spend: 100, Leads: 4},
			{Spend: 100, Leads: 2},
			{Spend: 100, Leads: 2},
			{Spend: 100, Leads: 2},
		})

		comparison := service.CompareAdjacent(records, 3)
		require.NotNil(t, comparison)
		assert.Equal(t, domain.TrendUp, comparison.Direction)
		assert.Equal(t, 100.0, comparison.CostPerLeadChangePercent)
	})

	t.Run("Tabela com menos de 2n linhas não compara", func(t *testing.T) {
		records := domain.EnrichRecords([]domain.Record{
			{Spend: 100, Leads: 2},
			{Spend: 100, Leads: 2},
		})

		assert.Nil(t, service.CompareAdjacent(records, 3))
	})

	t.Run("Janela anterior sem CAC definido reporta variação zero", func(t *testing.T) {
		records := domain.EnrichRecords([]domain.Record{
			{Spend: 100, Leads: 0},
			{Spend: 100, Leads: 0},
			{Spend: 100, Leads: 0},
			{Spend: 100, Leads: 5},
			{Spend: 100, Leads: 5},
			{Spend: 100, Leads: 5},
		})

		comparison := service.CompareAdjacent(records, 3)
		require.NotNil(t, comparison)
		assert.Equal(t, 0.0, comparison.CostPerLeadChangePercent)
		assert.Equal(t, domain.TrendFlat, comparison.Direction)
	})
}

func TestCompareVariation(t *testing.T) {
	t.Run("Variação percentual de leads e diferenças absolutas", func(t *testing.T) {
		today := &domain.Window{TotalLeads: 12, TotalSpend: 120, CostPerLead: 10}
		yesterday := &domain.Window{TotalLeads: 10, TotalSpend: 100, CostPerLead: 10}

		variation := compareVariation(today, yesterday)
		require.NotNil(t, variation)

		assert.Equal(t, 20.0, variation.LeadsPercent)
		assert.Equal(t, 0.0, variation.CostPerLeadDiff)
		assert.Equal(t, 20.0, variation.SpendDiff)
	})

	t.Run("Ontem sem leads e hoje com leads reporta +100%", func(t *testing.T) {
		today := &domain.Window{TotalLeads: 5}
		yesterday := &domain.Window{}

		variation := compareVariation(today, yesterday)
		require.NotNil(t, variation)
		assert.Equal(t, 100.0, variation.LeadsPercent)
	})

	t.Run("Nenhum lead nos dois dias reporta zero", func(t *testing.T) {
		variation := compareVariation(&domain.Window{}, &domain.Window{})
		require.NotNil(t, variation)
		assert.Equal(t, 0.0, variation.LeadsPercent)
	})
}

func TestTopCampaigns(t *testing.T) {
	records := domain.EnrichRecords([]domain.Record{
		{Campaign: "A", Spend: 100, Leads: 5},
		{Campaign: "B", Spend: 300, Leads: 10},
		{Campaign: "A", Spend: 100, Leads: 5},
		{Campaign: "C", Spend: 50, Leads: 1},
		{Campaign: "", Spend: 999, Leads: 99}, // sem nome fica de fora
	})

	t.Run("Ordena por leads e agrega por campanha", func(t *testing.T) {
		top := topCampaigns(records, 5)
		require.Len(t, top, 3)

		assert.Equal(t, "B", top[0].Campaign)
		assert.Equal(t, 10.0, top[0].TotalLeads)
		assert.Equal(t, 30.0, top[0].CostPerLead)

		assert.Equal(t, "A", top[1].Campaign)
		assert.Equal(t, 10.0, top[1].TotalLeads)
		assert.Equal(t, 20.0, top[1].CostPerLead)

		assert.Equal(t, "C", top[2].Campaign)
	})

	t.Run("Respeita o limite", func(t *testing.T) {
		top := topCampaigns(records, 2)
		assert.Len(t, top, 2)
	})

	t.Run("Limite zero desliga o ranking", func(t *testing.T) {
		assert.Nil(t, topCampaigns(records, 0))
	})
}

func TestService_BuildReport(t *testing.T) {
	service := testService(nil)

	records := []domain.Record{
		{Date: day(0), Campaign: "A", Spend: 100, Leads: 10, Clicks: 50, Impressions: 1000},
		{Date: day(1), Campaign: "A", Spend: 80, Leads: 4, Clicks: 40, Impressions: 900},
		{Date: day(2), Campaign: "B", Spend: 90, Leads: 6, Clicks: 45, Impressions: 950},
		{Date: day(3), Campaign: "B", Spend: 70, Leads: 2, Clicks: 30, Impressions: 800},
		{Date: day(4), Campaign: "A", Spend: 60, Leads: 3, Clicks: 25, Impressions: 700},
		{Date: day(5), Campaign: "B", Spend: 50, Leads: 1, Clicks: 20, Impressions: 600},
	}

	report := service.BuildReport(records, "dados_meta.csv", reference)

	t.Run("Relatório identifica a execução e a origem", func(t *testing.T) {
		assert.Equal(t, "dados_meta.csv", report.SourceFile)
		assert.Equal(t, reference, report.ReferenceDate)
		assert.Equal(t, 6, report.RowCount)
	})

	t.Run("Todas as janelas estão presentes", func(t *testing.T) {
		for _, name := range []string{
			domain.ReportWindowToday,
			domain.ReportWindowYesterday,
			domain.ReportWindowTrailing,
			domain.ReportWindowMonthToDate,
			domain.ReportWindowAllRecords,
		} {
			assert.Contains(t, report.Windows, name)
		}
	})

	t.Run("Variação hoje vs ontem", func(t *testing.T) {
		require.NotNil(t, report.Variation)
		assert.Equal(t, 150.0, report.Variation.LeadsPercent)
		assert.Equal(t, 20.0, report.Variation.SpendDiff)
	})

	t.Run("Tendência comparando as últimas linhas", func(t *testing.T) {
		require.NotNil(t, report.Trend)
		assert.NotEqual(t, domain.TrendDirection(""), report.Trend.Direction)
	})

	t.Run("Recomendações saem da janela dos últimos dias", func(t *testing.T) {
		// CAC da janela = 450/26 ≈ 17.3 → excelente
		require.NotEmpty(t, report.Recommendations)
		assert.Equal(t, "cost_per_lead", report.Recommendations[0].Metric)
		assert.Equal(t, recommending.TierCACExcellent, report.Recommendations[0].Tier)
	})

	t.Run("Projeção é a média diária vezes os dias projetados", func(t *testing.T) {
		require.NotNil(t, report.Projection)

		trailing := report.Window(domain.ReportWindowTrailing)
		assert.Equal(t, trailing.DailyAvgLeads*30, report.Projection.ProjectedLeads)
		assert.Equal(t, trailing.DailyAvgSpend*30, report.Projection.ProjectedSpend)
		assert.Equal(t, trailing.CostPerLead, report.Projection.ProjectedCostPerLead)
	})

	t.Run("Top campanhas agregadas por nome", func(t *testing.T) {
		require.Len(t, report.TopCampaigns, 2)
		assert.Equal(t, "A", report.TopCampaigns[0].Campaign)
		assert.Equal(t, 17.0, report.TopCampaigns[0].TotalLeads)
	})
}

func TestService_BuildReport_SemDados(t *testing.T) {
	service := testService(nil)

	report := service.BuildReport(nil, "vazio.csv", reference)

	assert.Equal(t, 0, report.RowCount)
	assert.True(t, report.Window(domain.ReportWindowAllRecords).IsEmpty())
	assert.Nil(t, report.Trend)
	assert.Nil(t, report.Projection)
	assert.Empty(t, report.Recommendations)
}

func TestService_AnalyzeFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Caminho explícito não dispara descoberta", func(t *testing.T) {
		mockLoader := mocks.NewMockLoader(ctrl)
		service := testService(mockLoader)

		mockLoader.EXPECT().
			LoadRecords("dados_meta.csv").
			Return([]domain.Record{{Spend: 100, Leads: 5}}, nil)

		report, err := service.AnalyzeFile("dados_meta.csv")
		require.NoError(t, err)
		assert.Equal(t, "dados_meta.csv", report.SourceFile)
		assert.Equal(t, 1, report.RowCount)
	})

	t.Run("Caminho vazio descobre o arquivo no diretório", func(t *testing.T) {
		mockLoader := mocks.NewMockLoader(ctrl)
		service := testService(mockLoader)

		mockLoader.EXPECT().
			Discover(gomock.Any()).
			Return("./dados_meta.csv", nil)
		mockLoader.EXPECT().
			LoadRecords("./dados_meta.csv").
			Return([]domain.Record{{Spend: 50, Leads: 2}}, nil)

		report, err := service.AnalyzeFile("")
		require.NoError(t, err)
		assert.Equal(t, "./dados_meta.csv", report.SourceFile)
	})

	t.Run("Sem arquivo de dados propaga o erro", func(t *testing.T) {
		mockLoader := mocks.NewMockLoader(ctrl)
		service := testService(mockLoader)

		mockLoader.EXPECT().
			Discover(gomock.Any()).
			Return("", dataset.ErrNoDataFound)

		_, err := service.AnalyzeFile("")
		assert.ErrorIs(t, err, dataset.ErrNoDataFound)
	})
}

func TestService_EnrichedRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockLoader(ctrl)
	service := testService(mockLoader)

	mockLoader.EXPECT().
		LoadRecords("dados_meta.csv").
		Return([]domain.Record{{Spend: 100, Leads: 4}}, nil)

	records, err := service.EnrichedRecords("dados_meta.csv")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 25.0, records[0].CostPerLead)
}

func TestWindowName(t *testing.T) {
	assert.Equal(t, "today", windowName(domain.WindowSpec{Kind: domain.WindowToday}))
	assert.Equal(t, "last_7_days", windowName(domain.TrailingDays(7)))
	assert.Equal(t, "all_records", windowName(domain.WindowSpec{Kind: domain.WindowAllRecords}))
}
