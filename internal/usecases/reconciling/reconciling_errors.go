package reconciling

import (
	"errors"
	"fmt"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
)

// Erros específicos da reconciliação do universo com as vendas
var (
	// Erros de fontes de dados
	ErrLoadUniverse = errors.New("erro ao carregar o universo de clientes")
	ErrLoadPartners = errors.New("erro ao carregar a base de sócios")
	ErrLoadSales    = errors.New("erro ao carregar as vendas")

	// Erros de configuração
	ErrInvalidColumns = errors.New("colunas configuradas não encontradas")

	// Erros de saída
	ErrExport = errors.New("erro ao exportar o resultado")

	ErrRunInProgress = errors.New("já existe uma execução do pipeline em andamento")
	ErrNoResult      = errors.New("nenhuma execução do pipeline concluída")
)

// PipelineError é um erro com contexto adicional para uma execução do pipeline
type PipelineError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	RunID   string // ID da execução (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError cria um novo PipelineError
func NewPipelineError(err error, code string, runID string, details string) *PipelineError {
	return &PipelineError{
		Err:     err,
		Code:    code,
		RunID:   runID,
		Details: details,
	}
}

// IsConfigurationError indica erros causados por nomes de coluna ou opções inválidas
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidColumns) ||
		errors.Is(err, domain.ErrColumnNotFound) ||
		errors.Is(err, domain.ErrInvalidJoinType)
}
