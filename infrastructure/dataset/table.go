package dataset

// Table é a representação em memória da tabela de entrada: uma linha de
// cabeçalho e as linhas de dados, todas como texto cru antes da coerção.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell devolve a célula da linha na coluna indicada, ou vazio quando a
// linha é mais curta que o cabeçalho (planilhas exportadas fazem isso).
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
