package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/ruasdev/meta-ads-analyzer/infrastructure/dataset"
	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
	"github.com/ruasdev/meta-ads-analyzer/pkg/apiErrors"
	"github.com/ruasdev/meta-ads-analyzer/pkg/log"
)

// ReportProvider fornece o relatório de análise mais recente
type ReportProvider interface {
	LatestReport() (*domain.AnalysisReport, error)
	LastRefreshAt() time.Time
	RefreshReport()
}

func GetReport(provider ReportProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		logger.Info("report: fetching latest analysis report")

		rpt, err := provider.LatestReport()
		if err != nil {
			if errors.Is(err, dataset.ErrNoDataFound) {
				logger.WithError(err).Warn("report: no dataset available for analysis")
				apiErrors.WriteError(w, apiErrors.ErrNoDataAvailable, "Nenhum dado disponível para análise", nil)
				return
			}

			logger.WithError(err).Error("report: failed to build analysis report")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar o relatório", nil)
			return
		}

		logger.WithFields(log.Fields{
			"report_id":   rpt.ID,
			"source_file": rpt.SourceFile,
			"rows":        rpt.RowCount,
		}).Info("report: analysis report served")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rpt); err != nil {
			logger.WithError(err).Error("report: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao serializar o relatório", nil)
		}
	})
}

func RefreshReport(provider ReportProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		logger.Info("report: manual refresh requested")
		go provider.RefreshReport()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)

		response := map[string]any{
			"status":          "refresh started",
			"last_refresh_at": provider.LastRefreshAt(),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("report: failed to encode response")
		}
	})
}
