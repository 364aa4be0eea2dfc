package reconciling

import (
	"context"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces_mock.go -package=mocks

// TableSource carrega uma tabela completa (universo ou base de sócios) de arquivo ou banco
type TableSource interface {
	Load(ctx context.Context) (*domain.Table, error)
}

// SalesLoader localiza e lê os arquivos de vendas
type SalesLoader interface {
	FindSalesFiles(dir string) ([]string, error)
	LoadSales(ctx context.Context, files []string) (*domain.Table, error)
}

// Exporter grava a tabela final nos formatos pedidos e devolve os caminhos gerados
type Exporter interface {
	Export(ctx context.Context, t *domain.Table, name string, formats []string) ([]string, error)
}

// Reconciler executa o pipeline completo
type Reconciler interface {
	Run(ctx context.Context) (*domain.RunResult, error)
	LastResult() (*domain.RunResult, error)
}
