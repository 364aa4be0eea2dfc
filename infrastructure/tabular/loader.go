package tabular

import (
	"context"
	"path/filepath"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/pkg/errors"
)

// SalesLoader localiza e concatena os arquivos de vendas de um diretório
type SalesLoader struct {
	logger log.Logger
}

func NewSalesLoader(logger log.Logger) *SalesLoader {
	if logger == nil {
		logger = log.L
	}
	return &SalesLoader{logger: logger}
}

func (l *SalesLoader) FindSalesFiles(dir string) ([]string, error) {
	return FindSalesFiles(dir, l.logger)
}

// LoadSales lê cada arquivo e empilha as linhas, unindo as colunas.
// Arquivos .xls (formato binário antigo) são ignorados com aviso.
func (l *SalesLoader) LoadSales(ctx context.Context, files []string) (*domain.Table, error) {
	logger := l.logger.WithContext(ctx)
	tables := make([]*domain.Table, 0, len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := ReadFile(path, "")
		if errors.Is(err, ErrUnsupportedFormat) {
			logger.WithField("file", filepath.Base(path)).Warn("Formato de arquivo de vendas não suportado, arquivo ignorado")
			continue
		}
		if err != nil {
			return nil, err
		}

		logger.WithFields(log.Fields{
			"file": filepath.Base(path),
			"rows": t.Len(),
		}).Info("Arquivo de vendas carregado")
		tables = append(tables, t)
	}

	sales := domain.Concat(tables...)
	logger.WithField("rows", sales.Len()).Info("Vendas consolidadas")
	return sales, nil
}

// FileSource carrega o universo ou a base de sócios de um arquivo
type FileSource struct {
	Path  string
	Sheet string
}

func NewFileSource(path, sheet string) *FileSource {
	return &FileSource{Path: path, Sheet: sheet}
}

func (s *FileSource) Load(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := ReadFile(s.Path, s.Sheet)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"file": filepath.Base(s.Path),
		"rows": t.Len(),
	}).Info("Tabela carregada de arquivo")
	return t, nil
}
