package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/ruasdev/meta-ads-analyzer/internal/config"
	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
	"github.com/ruasdev/meta-ads-analyzer/internal/usecases/analyzing"
	"github.com/sirupsen/logrus"
)

// ReportRefreshConfig representa a configuração do agendador de
// atualização do relatório
type ReportRefreshConfig struct {
	CronSchedule   string
	RefreshEnabled bool
}

// ReportRefreshService mantém o relatório mais recente em memória para o
// modo servidor e o atualiza no horário agendado. O dataset em si nunca
// é modificado; cada atualização é uma execução completa da análise.
type ReportRefreshService struct {
	scheduler         *gocron.Scheduler
	config            ReportRefreshConfig
	analyzer          analyzing.Analyzer
	refreshRunning    bool
	refreshMutex      sync.Mutex
	latestReport      *domain.AnalysisReport
	latestReportMutex sync.RWMutex
	lastRefreshAt     time.Time
}

// NewReportRefreshService cria uma nova instância do serviço de
// atualização do relatório
func NewReportRefreshService(analyzer analyzing.Analyzer, appConfig *config.Config) *ReportRefreshService {
	refreshConfig := ReportRefreshConfig{
		CronSchedule:   appConfig.ReportRefresh.CronSchedule,
		RefreshEnabled: appConfig.ReportRefresh.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   refreshConfig.CronSchedule,
		"refresh_enabled": refreshConfig.RefreshEnabled,
	}).Info("Configuração do agendador de atualização do relatório carregada")

	return &ReportRefreshService{
		scheduler: scheduler,
		config:    refreshConfig,
		analyzer:  analyzer,
	}
}

// Start inicia o agendador
func (s *ReportRefreshService) Start(ctx context.Context) error {
	if !s.config.RefreshEnabled {
		logrus.Info("Atualização periódica do relatório desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atualização do relatório")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RefreshReport()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do relatório: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização do relatório")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshReport executa a análise e substitui o relatório em memória.
// Execuções sobrepostas são ignoradas.
func (s *ReportRefreshService) RefreshReport() {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Atualização do relatório já em andamento, ignorando")
		return
	}
	s.refreshRunning = true
	s.refreshMutex.Unlock()

	defer func() {
		s.refreshMutex.Lock()
		s.refreshRunning = false
		s.refreshMutex.Unlock()
	}()

	startTime := time.Now()

	rpt, err := s.analyzer.AnalyzeFile("")
	if err != nil {
		logrus.WithError(err).Error("Erro ao atualizar o relatório de análise")
		return
	}

	s.latestReportMutex.Lock()
	s.latestReport = rpt
	s.lastRefreshAt = time.Now()
	s.latestReportMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"report_id":   rpt.ID,
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Info("Relatório atualizado com sucesso")
}

// LatestReport devolve o relatório mais recente, gerando um na primeira
// chamada caso o agendador ainda não tenha executado.
func (s *ReportRefreshService) LatestReport() (*domain.AnalysisReport, error) {
	s.latestReportMutex.RLock()
	cached := s.latestReport
	s.latestReportMutex.RUnlock()

	if cached != nil {
		return cached, nil
	}

	rpt, err := s.analyzer.AnalyzeFile("")
	if err != nil {
		return nil, err
	}

	s.latestReportMutex.Lock()
	s.latestReport = rpt
	s.lastRefreshAt = time.Now()
	s.latestReportMutex.Unlock()

	return rpt, nil
}

// LastRefreshAt informa quando o relatório foi atualizado pela última vez
func (s *ReportRefreshService) LastRefreshAt() time.Time {
	s.latestReportMutex.RLock()
	defer s.latestReportMutex.RUnlock()
	return s.lastRefreshAt
}
