package tabular

import (
	"os"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName é o nome da planilha gravada nas exportações
const DefaultSheetName = "universo_directa"

// ReadXLSX lê uma planilha com cabeçalho na primeira linha.
// Os valores são lidos crus (sem formatação de número) e células vazias ficam nulas.
func ReadXLSX(path, sheet string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrReadFile, "%s: %v", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(ErrReadFile, "%s (planilha %q): %v", path, sheet, err)
	}
	if len(rows) == 0 {
		return domain.NewTable(), nil
	}

	return buildTable(rows[0], rows[1:]), nil
}

// WriteXLSX grava a tabela em uma única planilha; nulos ficam como células vazias
func WriteXLSX(path string, t *domain.Table) error {
	f := excelize.NewFile()

	err := fillSheet(f, path, t)
	if err == nil {
		err = saveXLSX(f, path)
	}
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = errors.Wrapf(ErrWriteFile, "%s: %v", path, closeErr)
	}
	return err
}

func saveXLSX(f *excelize.File, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
	}

	var writeErr error
	if _, err := f.WriteTo(file); err != nil {
		writeErr = errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
	}
	return closeWritten(path, file, writeErr)
}

func fillSheet(f *excelize.File, path string, t *domain.Table) error {
	if err := f.SetSheetName(f.GetSheetName(0), DefaultSheetName); err != nil {
		return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(DefaultSheetName, "A1", &header); err != nil {
		return errors.Wrapf(ErrWriteFile, "%s: cabeçalho: %v", path, err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
		}

		values := make([]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			values[j] = xlsxValue(row[col])
		}
		if err := f.SetSheetRow(DefaultSheetName, cell, &values); err != nil {
			return errors.Wrapf(ErrWriteFile, "%s: linha %d: %v", path, i+2, err)
		}
	}

	return nil
}

func xlsxValue(v any) interface{} {
	switch value := v.(type) {
	case decimal.Decimal:
		return value.InexactFloat64()
	case []byte:
		return string(value)
	default:
		if _, ok := domain.CellString(v); !ok {
			return nil
		}
		return v
	}
}
