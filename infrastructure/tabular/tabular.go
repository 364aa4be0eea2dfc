// Package tabular lê e grava as tabelas do pipeline em CSV, XLSX e Parquet
package tabular

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/pkg/errors"
)

const (
	ExtCSV     = ".csv"
	ExtXLSX    = ".xlsx"
	ExtXLS     = ".xls"
	ExtParquet = ".parquet"
)

var (
	ErrUnsupportedFormat = errors.New("formato de arquivo não suportado")
	ErrReadFile          = errors.New("erro ao ler arquivo")
	ErrWriteFile         = errors.New("erro ao gravar arquivo")
)

// closeWritten fecha o arquivo gravado e devolve o primeiro erro entre a escrita e o fechamento
func closeWritten(path string, c io.Closer, writeErr error) error {
	closeErr := c.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return errors.Wrapf(ErrWriteFile, "%s: %v", path, closeErr)
	}
	return nil
}

// ReadFile lê um arquivo tabular escolhendo o leitor pela extensão.
// sheet só é usado em XLSX; vazio significa a primeira planilha.
func ReadFile(path, sheet string) (*domain.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtCSV:
		return ReadCSV(path)
	case ExtXLSX:
		return ReadXLSX(path, sheet)
	case ExtParquet:
		return ReadParquet(path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s (%s)", filepath.Base(path), ext)
	}
}

// headerNames normaliza o cabeçalho: nomes vazios viram "Unnamed: i" e repetidos recebem ".n"
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

// buildTable monta a tabela a partir de registros em texto; células vazias são nulas
func buildTable(header []string, records [][]string) *domain.Table {
	columns := headerNames(header)
	t := domain.NewTable(columns...)
	for _, record := range records {
		if isBlank(record) {
			continue
		}
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			if i < len(record) && record[i] != "" {
				row[col] = record[i]
			} else {
				row[col] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
