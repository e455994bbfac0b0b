package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ErrNoDataFound indica que nenhum arquivo de dados legível foi
// encontrado. É a única falha fatal do pipeline.
var ErrNoDataFound = errors.New("nenhum arquivo de dados encontrado")

// Nomes de arquivo procurados primeiro, na ordem de preferência
var preferredNames = []string{
	"dados_meta.csv",
	"meta_ads.csv",
	"relatorio.csv",
	"ads_data.csv",
}

// Loader carrega a tabela de anúncios a partir de um arquivo CSV ou XLSX
type Loader interface {
	Discover(dir string) (string, error)
	LoadRecords(path string) ([]domain.Record, error)
}

type fileLoader struct{}

// NewLoader cria o carregador de arquivos padrão
func NewLoader() Loader {
	return &fileLoader{}
}

// Discover localiza o arquivo de dados no diretório: primeiro os nomes
// preferidos, depois o primeiro .csv ou .xlsx em ordem alfabética.
func (l *fileLoader) Discover(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, "erro ao listar o diretório %s", dir)
	}

	available := make(map[string]bool)
	candidates := make([]string, 0)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}

		available[name] = true
		candidates = append(candidates, name)
	}

	for _, name := range preferredNames {
		if available[name] {
			return filepath.Join(dir, name), nil
		}
	}

	if len(candidates) == 0 {
		return "", ErrNoDataFound
	}

	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), nil
}

// LoadRecords lê o arquivo, normaliza o cabeçalho e coage as linhas para
// Records canônicos.
func (l *fileLoader) LoadRecords(path string) ([]domain.Record, error) {
	table, err := l.loadTable(path)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"file":    path,
		"rows":    len(table.Rows),
		"columns": table.Headers,
	}).Info("Dados carregados")

	mapping := NormalizeHeaders(table.Headers)
	return BuildRecords(table, mapping), nil
}

func (l *fileLoader) loadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadXLSX(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrNoDataFound, "erro ao abrir %s: %v", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // planilhas exportadas têm linhas irregulares

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler o CSV %s", path)
	}

	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrNoDataFound, "arquivo vazio: %s", path)
	}

	return &Table{Headers: rows[0], Rows: rows[1:]}, nil
}

func loadXLSX(path string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrNoDataFound, "erro ao abrir %s: %v", path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Wrapf(ErrNoDataFound, "planilha sem abas: %s", path)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler a aba %s", sheets[0])
	}

	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrNoDataFound, "planilha vazia: %s", path)
	}

	return &Table{Headers: rows[0], Rows: rows[1:]}, nil
}
