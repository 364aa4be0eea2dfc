package tabular

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/pkg/errors"
)

// FileExporter grava a tabela final no diretório de saída
type FileExporter struct {
	dir    string
	logger log.Logger
}

func NewFileExporter(dir string, logger log.Logger) *FileExporter {
	if logger == nil {
		logger = log.L
	}
	return &FileExporter{dir: dir, logger: logger}
}

// Export grava um arquivo <name>.<formato> para cada formato pedido e devolve os caminhos
func (e *FileExporter) Export(ctx context.Context, t *domain.Table, name string, formats []string) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, errors.Wrapf(ErrWriteFile, "%s: %v", e.dir, err)
	}

	logger := e.logger.WithContext(ctx)
	paths := make([]string, 0, len(formats))

	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return paths, err
		}

		format = strings.ToLower(strings.TrimSpace(format))
		path := filepath.Join(e.dir, name+"."+format)

		var err error
		switch format {
		case "csv":
			err = WriteCSV(path, t)
		case "xlsx":
			err = WriteXLSX(path, t)
		case "parquet":
			err = WriteParquet(path, t)
		default:
			err = errors.Wrap(ErrUnsupportedFormat, format)
		}
		if err != nil {
			return paths, err
		}

		logger.WithFields(log.Fields{
			"path": path,
			"rows": t.Len(),
		}).Info("Resultado exportado")
		paths = append(paths, path)
	}

	return paths, nil
}
