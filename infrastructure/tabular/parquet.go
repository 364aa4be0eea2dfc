package tabular

import (
	"fmt"
	"os"
	"strings"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

const (
	parquetParallelism = 1
	parquetDelimiter   = "\x01"
)

// ReadParquet lê todas as colunas folha de um arquivo Parquet plano
func ReadParquet(path string) (*domain.Table, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, errors.Wrapf(ErrReadFile, "%s: %v", path, err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetColumnReader(fr, parquetParallelism)
	if err != nil {
		return nil, errors.Wrapf(ErrReadFile, "%s: %v", path, err)
	}
	defer pr.ReadStop()

	numRows := pr.GetNumRows()
	paths := pr.SchemaHandler.ValueColumns

	columns := make([]string, len(paths))
	values := make([][]interface{}, len(paths))
	for i, inPath := range paths {
		columns[i] = parquetColumnName(pr.SchemaHandler.InPathToExPath[inPath], inPath)

		data, _, _, err := pr.ReadColumnByIndex(int64(i), numRows)
		if err != nil {
			return nil, errors.Wrapf(ErrReadFile, "%s (coluna %s): %v", path, columns[i], err)
		}
		values[i] = data
	}

	t := domain.NewTable(headerNames(columns)...)
	for r := int64(0); r < numRows; r++ {
		row := make(domain.Row, len(t.Columns))
		for i, col := range t.Columns {
			if r < int64(len(values[i])) {
				row[col] = values[i][r]
			} else {
				row[col] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// parquetColumnName remove o prefixo da raiz do caminho externo da coluna
func parquetColumnName(exPath, inPath string) string {
	if exPath == "" {
		exPath = inPath
	}
	parts := strings.Split(exPath, parquetDelimiter)
	return parts[len(parts)-1]
}

// WriteParquet grava a tabela com esquema dinâmico: colunas só numéricas viram DOUBLE,
// as demais texto UTF8. Todas as colunas são opcionais para preservar nulos.
func WriteParquet(path string, t *domain.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
	}

	numeric := make([]bool, len(t.Columns))
	schema := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		numeric[i] = isNumericColumn(t, col)
		schema[i] = parquetField(col, numeric[i])
	}

	fw := writerfile.NewWriterFile(file)
	pw, err := writer.NewCSVWriter(schema, fw, parquetParallelism)
	if err != nil {
		file.Close()
		return errors.Wrapf(ErrWriteFile, "%s: esquema: %v", path, err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range t.Rows {
		record := make([]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			record[i] = parquetValue(row[col], numeric[i])
		}
		if err := pw.Write(record); err != nil {
			pw.WriteStop()
			file.Close()
			return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		file.Close()
		return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
	}
	return nil
}

func parquetField(name string, numeric bool) string {
	// "," e "=" separam as chaves da definição do campo
	name = strings.NewReplacer(",", "_", "=", "_").Replace(name)
	if numeric {
		return fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", name)
	}
	return fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", name)
}

// isNumericColumn indica se todos os valores não nulos são números
func isNumericColumn(t *domain.Table, col string) bool {
	found := false
	for _, row := range t.Rows {
		switch row[col].(type) {
		case nil:
			continue
		case float64, float32, int, int32, int64, decimal.Decimal:
			if _, ok := domain.CellString(row[col]); ok {
				found = true
			}
		default:
			return false
		}
	}
	return found
}

func parquetValue(v any, numeric bool) interface{} {
	if _, ok := domain.CellString(v); !ok {
		return nil
	}
	if !numeric {
		s, _ := domain.CellString(v)
		return s
	}

	switch value := v.(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int32:
		return float64(value)
	case int64:
		return float64(value)
	case decimal.Decimal:
		return value.InexactFloat64()
	default:
		return nil
	}
}
