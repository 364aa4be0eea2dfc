package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV lê um CSV com cabeçalho. O separador (";" ou ",") é detectado pela primeira linha.
func ReadCSV(path string) (*domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrReadFile, "%s: %v", path, err)
	}
	defer file.Close()

	t, err := readCSV(file)
	if err != nil {
		return nil, errors.Wrapf(ErrReadFile, "%s: %v", path, err)
	}
	return t, nil
}

func readCSV(r io.Reader) (*domain.Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	// Peek devolve o que houver até o tamanho do buffer; io.EOF só indica arquivo curto
	firstLine, err := br.Peek(br.Size())
	if err != nil && err != io.EOF {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(firstLine)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return domain.NewTable(), nil
	}

	return buildTable(records[0], records[1:]), nil
}

// detectDelimiter escolhe ";" quando aparece mais que "," na primeira linha
func detectDelimiter(sample []byte) rune {
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		sample = sample[:i]
	}
	if bytes.Count(sample, []byte{';'}) > bytes.Count(sample, []byte{','}) {
		return ';'
	}
	return ','
}

// WriteCSV grava a tabela em CSV UTF-8 com BOM; nulos viram células vazias
func WriteCSV(path string, t *domain.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
	}

	return closeWritten(path, file, writeCSV(file, path, t))
}

func writeCSV(w io.Writer, path string, t *domain.Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return errors.Wrapf(ErrWriteFile, "%s: cabeçalho: %v", path, err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i], _ = domain.CellString(row[col])
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(ErrWriteFile, "%s: %v", path, err)
	}
	return nil
}
