package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/ruasdev/meta-ads-analyzer/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Analysis      Analysis      `mapstructure:",squash"`
	Thresholds    Thresholds    `mapstructure:",squash"`
	Export        Export        `mapstructure:",squash"`
	ReportRefresh ReportRefresh `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Analysis controla as janelas e a data de referência da análise
type Analysis struct {
	InputFile       string `mapstructure:"input_file"`
	InputDir        string `mapstructure:"input_dir"`
	TrailingDays    int    `mapstructure:"analysis_trailing_days"`
	TrendWindowSize int    `mapstructure:"analysis_trend_window_size"`
	ProjectionDays  int    `mapstructure:"analysis_projection_days"`
	TopCampaigns    int    `mapstructure:"analysis_top_campaigns"`
	ReferenceDate   string `mapstructure:"analysis_reference_date"`
}

// Thresholds são os limites (em unidade de moeda e percentuais) das
// recomendações automáticas
type Thresholds struct {
	CACTooHigh    float64 `mapstructure:"threshold_cac_too_high"`
	CACHigh       float64 `mapstructure:"threshold_cac_high"`
	CACAcceptable float64 `mapstructure:"threshold_cac_acceptable"`
	CTRLow        float64 `mapstructure:"threshold_ctr_low"`
	CTRHigh       float64 `mapstructure:"threshold_ctr_high"`
}

type Export struct {
	Enabled        bool   `mapstructure:"export_enabled"`
	DetailFile     string `mapstructure:"export_detail_file"`
	KeyMetricsFile string `mapstructure:"export_key_metrics_file"`
	ReportJSONFile string `mapstructure:"export_report_json_file"`
}

// ReportRefresh controla a atualização periódica do relatório no modo servidor
type ReportRefresh struct {
	CronSchedule string `mapstructure:"report_refresh_cron"`
	Enabled      bool   `mapstructure:"report_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("INPUT_FILE", "") // vazio = descobrir no diretório
	viper.SetDefault("INPUT_DIR", ".")
	viper.SetDefault("ANALYSIS_TRAILING_DAYS", 7)
	viper.SetDefault("ANALYSIS_TREND_WINDOW_SIZE", 3)
	viper.SetDefault("ANALYSIS_PROJECTION_DAYS", 30)
	viper.SetDefault("ANALYSIS_TOP_CAMPAIGNS", 5)
	viper.SetDefault("ANALYSIS_REFERENCE_DATE", "") // vazio = hoje

	// Limites de recomendação em R$ (CAC) e % (CTR)
	viper.SetDefault("THRESHOLD_CAC_TOO_HIGH", 80.0)
	viper.SetDefault("THRESHOLD_CAC_HIGH", 50.0)
	viper.SetDefault("THRESHOLD_CAC_ACCEPTABLE", 20.0)
	viper.SetDefault("THRESHOLD_CTR_LOW", 1.0)
	viper.SetDefault("THRESHOLD_CTR_HIGH", 3.0)

	viper.SetDefault("EXPORT_ENABLED", true)
	viper.SetDefault("EXPORT_DETAIL_FILE", "relatorio_detalhado.csv")
	viper.SetDefault("EXPORT_KEY_METRICS_FILE", "metricas_chave.txt")
	viper.SetDefault("EXPORT_REPORT_JSON_FILE", "relatorio.json")

	viper.SetDefault("REPORT_REFRESH_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("REPORT_REFRESH_ENABLED", true)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Permite que o Viper leia variáveis de ambiente

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// ReferenceDate resolve a data de referência da análise: a data
// configurada quando válida, senão a data de hoje.
func (c *Config) ReferenceDate() time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if c.Analysis.ReferenceDate == "" {
		return today
	}

	parsed, err := utils.ParseDate(c.Analysis.ReferenceDate)
	if err != nil {
		logrus.WithField("reference_date", c.Analysis.ReferenceDate).
			Warn("Data de referência inválida na configuração, usando a data de hoje")
		return today
	}

	return *parsed
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}
}
