package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
	"github.com/ruasdev/meta-ads-analyzer/internal/report"
	"github.com/ruasdev/meta-ads-analyzer/pkg/utils"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Tabelas com mais linhas que isso são resumidas por dia no CSV detalhado
const dailyRollupThreshold = 10

// Exporter grava os artefatos de saída de uma execução da análise
type Exporter interface {
	ExportDetail(records []domain.EnrichedRecord, path string) error
	ExportKeyMetrics(rpt *domain.AnalysisReport, path string) error
	ExportReportJSON(rpt *domain.AnalysisReport, path string) error
}

type fileExporter struct{}

// NewExporter cria o exportador de arquivos padrão
func NewExporter() Exporter {
	return &fileExporter{}
}

// ExportDetail grava o CSV detalhado. Tabelas grandes com datas são
// resumidas por dia: somas dos totais, médias das métricas derivadas.
func (e *fileExporter) ExportDetail(records []domain.EnrichedRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "erro ao criar o arquivo %s", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	hasDates := false
	for _, record := range records {
		if record.HasDate() {
			hasDates = true
			break
		}
	}

	if hasDates && len(records) > dailyRollupThreshold {
		return writeDailyRollup(writer, records)
	}

	return writeRows(writer, records)
}

func writeRows(writer *csv.Writer, records []domain.EnrichedRecord) error {
	header := []string{"date", "campaign", "spend", "leads", "clicks", "impressions", "cost_per_lead", "ctr_percent", "conversion_rate_percent"}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "erro ao escrever o cabeçalho do CSV")
	}

	for _, record := range records {
		date := ""
		if record.HasDate() {
			date = record.Date.Format(time.DateOnly)
		}

		row := []string{
			date,
			record.Campaign,
			formatNumber(record.Spend),
			formatNumber(record.Leads),
			formatNumber(record.Clicks),
			formatNumber(record.Impressions),
			formatNumber(utils.RoundWithTwoDecimalPlace(record.CostPerLead)),
			formatNumber(utils.RoundWithTwoDecimalPlace(record.CTRPercent)),
			formatNumber(utils.RoundWithTwoDecimalPlace(record.ConversionRatePercent)),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "erro ao escrever linha do CSV")
		}
	}

	return nil
}

type dailyTotals struct {
	spend, leads, clicks, impressions float64
	costPerLeadSum, ctrSum, convSum   float64
	rows                              int
}

func writeDailyRollup(writer *csv.Writer, records []domain.EnrichedRecord) error {
	byDate := make(map[string]*dailyTotals)

	for _, record := range records {
		if !record.HasDate() {
			continue
		}

		key := record.Date.Format(time.DateOnly)
		totals, exists := byDate[key]
		if !exists {
			totals = &dailyTotals{}
			byDate[key] = totals
		}

		totals.spend += record.Spend
		totals.leads += record.Leads
		totals.clicks += record.Clicks
		totals.impressions += record.Impressions
		totals.costPerLeadSum += record.CostPerLead
		totals.ctrSum += record.CTRPercent
		totals.convSum += record.ConversionRatePercent
		totals.rows++
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	header := []string{"date", "spend", "leads", "clicks", "impressions", "cost_per_lead", "ctr_percent", "conversion_rate_percent"}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "erro ao escrever o cabeçalho do CSV")
	}

	for _, date := range dates {
		totals := byDate[date]
		n := float64(totals.rows)

		row := []string{
			date,
			formatNumber(totals.spend),
			formatNumber(totals.leads),
			formatNumber(totals.clicks),
			formatNumber(totals.impressions),
			formatNumber(utils.RoundWithTwoDecimalPlace(totals.costPerLeadSum / n)),
			formatNumber(utils.RoundWithTwoDecimalPlace(totals.ctrSum / n)),
			formatNumber(utils.RoundWithTwoDecimalPlace(totals.convSum / n)),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "erro ao escrever linha do CSV")
		}
	}

	return nil
}

// ExportKeyMetrics grava o arquivo texto de métricas chave
func (e *fileExporter) ExportKeyMetrics(rpt *domain.AnalysisReport, path string) error {
	if rpt == nil {
		return errors.New("relatório vazio")
	}

	content := report.RenderKeyMetrics(rpt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "erro ao gravar %s", path)
	}

	logrus.WithField("file", path).Info("Métricas chave salvas")
	return nil
}

// ExportReportJSON grava o relatório legível por máquina
func (e *fileExporter) ExportReportJSON(rpt *domain.AnalysisReport, path string) error {
	if rpt == nil {
		return errors.New("relatório vazio")
	}

	payload, err := json.MarshalIndent(rpt, "", "  ")
	if err != nil {
		return errors.Wrap(err, "erro ao serializar o relatório")
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return errors.Wrapf(err, "erro ao gravar %s", path)
	}

	logrus.WithField("file", path).Info("Relatório JSON salvo")
	return nil
}

func formatNumber(value float64) string {
	return fmt.Sprintf("%g", value)
}
