package main

import (
	"context"
	"os"
	"time"

	"github.com/ruasdev/meta-ads-analyzer/infrastructure/dataset"
	"github.com/ruasdev/meta-ads-analyzer/infrastructure/exporter"
	"github.com/ruasdev/meta-ads-analyzer/internal/api"
	"github.com/ruasdev/meta-ads-analyzer/internal/config"
	"github.com/ruasdev/meta-ads-analyzer/internal/report"
	"github.com/ruasdev/meta-ads-analyzer/internal/scheduler"
	"github.com/ruasdev/meta-ads-analyzer/internal/usecases/analyzing"
	"github.com/ruasdev/meta-ads-analyzer/internal/usecases/recommending"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := dataset.NewLoader()
	recommender := recommending.NewService(cfg.Thresholds)
	analyzer := analyzing.NewService(cfg, loader, recommender)

	// `analyzer serve` expõe o relatório via HTTP; qualquer outro argumento
	// é tratado como caminho do arquivo para uma análise única
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		runServer(ctx, cfg, analyzer)
		return
	}

	inputPath := cfg.Analysis.InputFile
	if len(os.Args) > 1 {
		inputPath = os.Args[1]
	}

	runOnce(cfg, analyzer, inputPath)
}

func runOnce(cfg *config.Config, analyzer analyzing.Analyzer, inputPath string) {
	rpt, err := analyzer.AnalyzeFile(inputPath)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao analisar os dados")
	}

	report.RenderConsole(os.Stdout, rpt)

	if !cfg.Export.Enabled {
		return
	}

	exp := exporter.NewExporter()

	records, err := analyzer.EnrichedRecords(inputPath)
	if err != nil {
		logrus.WithError(err).Error("Erro ao recarregar os dados para exportação")
		return
	}

	if err := exp.ExportDetail(records, cfg.Export.DetailFile); err != nil {
		logrus.WithError(err).Error("Erro ao exportar o CSV detalhado")
	}

	if err := exp.ExportKeyMetrics(rpt, cfg.Export.KeyMetricsFile); err != nil {
		logrus.WithError(err).Error("Erro ao exportar as métricas chave")
	}

	if err := exp.ExportReportJSON(rpt, cfg.Export.ReportJSONFile); err != nil {
		logrus.WithError(err).Error("Erro ao exportar o relatório JSON")
	}
}

func runServer(ctx context.Context, cfg *config.Config, analyzer analyzing.Analyzer) {
	refreshService := scheduler.NewReportRefreshService(analyzer, cfg)

	if err := refreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do relatório")
	} else {
		logrus.Info("Agendador de atualização do relatório iniciado com sucesso")
	}

	server, err := api.New(cfg, refreshService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
