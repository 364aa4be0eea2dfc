package tabular

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
)

// SalesFileMarker é o trecho que identifica um arquivo de vendas pelo nome
const SalesFileMarker = "venta"

var salesExtensions = []string{ExtXLSX, ExtXLS, ExtCSV, ExtParquet}

// FindSalesFiles lista os arquivos de vendas do diretório (sem recursão), ordenados pelo nome.
// Diretório inexistente ou sem arquivos não é erro: devolve lista vazia e registra um aviso.
func FindSalesFiles(dir string, logger log.Logger) ([]string, error) {
	if logger == nil {
		logger = log.L
	}
	logger = logger.WithField("dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Diretório de vendas não existe")
			return []string{}, nil
		}
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := strings.ToLower(entry.Name())
		if !strings.Contains(name, SalesFileMarker) || !hasSalesExtension(name) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if len(files) == 0 {
		logger.Warn("Nenhum arquivo de vendas encontrado")
		return files, nil
	}

	sort.Strings(files)
	logger.WithField("files", len(files)).Info("Arquivos de vendas encontrados")
	return files, nil
}

func hasSalesExtension(name string) bool {
	for _, ext := range salesExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
