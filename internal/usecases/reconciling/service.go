package reconciling

import (
	"context"
	"sync"
	"time"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/apiErrors"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/utils"
	"github.com/shopspring/decimal"
)

// OutputPrefix é o prefixo dos arquivos exportados, seguido do ID da execução
const OutputPrefix = "universo_directa_"

// Settings reúne as opções do pipeline lidas da configuração
type Settings struct {
	Columns       domain.ColumnDictionary
	SalesColumns  domain.SalesColumns
	Enrichment    domain.EnrichmentRules
	Period        domain.Period
	Join          domain.JoinType
	SalesDir      string
	DedupRoster   bool
	ExportFormats []string
}

type Service struct {
	universe TableSource
	partners TableSource
	loader   SalesLoader
	exporter Exporter
	settings Settings
	logger   log.Logger

	mu   sync.RWMutex
	last *domain.RunResult
}

// NewService cria o serviço de reconciliação. exporter pode ser nil quando não há exportação.
func NewService(
	universe TableSource,
	partners TableSource,
	loader SalesLoader,
	exporter Exporter,
	settings Settings,
	logger log.Logger,
) *Service {
	return &Service{
		universe: universe,
		partners: partners,
		loader:   loader,
		exporter: exporter,
		settings: settings,
		logger:   loggerOrDefault(logger),
	}
}

// Run executa o pipeline: carrega universo e sócios, complementa o universo,
// integra as vendas encontradas no diretório e exporta o resultado.
func (s *Service) Run(ctx context.Context) (*domain.RunResult, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		return nil, NewPipelineError(err, apiErrors.ErrInternalServer, "", "Erro ao gerar ID da execução")
	}

	ctx = log.WithRunID(ctx, runID)
	logger := s.logger.WithContext(ctx)

	result := &domain.RunResult{
		ID:        runID,
		StartedAt: time.Now(),
	}

	logger.Info("Iniciando pipeline de reconciliação do universo directa")

	universe, err := s.universe.Load(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao carregar universo de clientes")
		return nil, NewPipelineError(ErrLoadUniverse, apiErrors.ErrDatabaseOperation, runID, err.Error())
	}
	result.UniverseRows = universe.Len()

	partners, err := s.partners.Load(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao carregar base de sócios")
		return nil, NewPipelineError(ErrLoadPartners, apiErrors.ErrDatabaseOperation, runID, err.Error())
	}

	if s.settings.DedupRoster {
		var removed int
		partners, removed = DropDuplicates(partners, s.settings.Columns.Partners.CustomerID)
		logger.Infof("%d linhas duplicadas removidas da base de sócios", removed)
	}
	result.PartnerRows = partners.Len()

	complemented, err := ComplementUniverse(universe, partners, s.settings.Columns, s.settings.Enrichment, logger)
	if err != nil {
		logger.WithError(err).Error("Erro ao complementar universo")
		return nil, NewPipelineError(err, apiErrors.ErrInvalidRequest, runID, "Verifique os nomes de colunas configurados")
	}

	if err := ctx.Err(); err != nil {
		return nil, NewPipelineError(err, apiErrors.ErrInternalServer, runID, "Execução cancelada")
	}

	files, err := s.loader.FindSalesFiles(s.settings.SalesDir)
	if err != nil {
		logger.WithError(err).Error("Erro ao localizar arquivos de vendas")
		return nil, NewPipelineError(ErrLoadSales, apiErrors.ErrInternalServer, runID, err.Error())
	}
	result.SalesFiles = files

	sales := domain.NewTable()
	if len(files) > 0 {
		sales, err = s.loader.LoadSales(ctx, files)
		if err != nil {
			logger.WithError(err).Error("Erro ao ler arquivos de vendas")
			return nil, NewPipelineError(ErrLoadSales, apiErrors.ErrInternalServer, runID, err.Error())
		}
	}
	result.SalesRows = sales.Len()

	output, aggregation, err := IntegrateSales(complemented, sales, IntegrationSettings{
		SalesColumns: s.settings.SalesColumns,
		Period:       s.settings.Period,
		UniverseKey:  s.settings.Columns.Universe.CustomerID,
		Join:         s.settings.Join,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("Erro ao integrar vendas ao universo")
		return nil, NewPipelineError(err, apiErrors.ErrInvalidRequest, runID, "Verifique os nomes de colunas configurados")
	}

	result.Output = output
	result.OutputRows = output.Len()
	result.Months = aggregation.Months
	result.PeriodDefined = aggregation.PeriodDefined
	result.Brands = aggregation.Brands
	result.DroppedRows = aggregation.DroppedRows
	result.CoercedValues = aggregation.CoercedValues
	result.TotalAmount, result.TotalVolume = totals(aggregation)

	if s.exporter != nil && len(s.settings.ExportFormats) > 0 {
		exports, err := s.exporter.Export(ctx, output, OutputPrefix+runID, s.settings.ExportFormats)
		if err != nil {
			logger.WithError(err).Error("Erro ao exportar resultado")
			return nil, NewPipelineError(ErrExport, apiErrors.ErrInternalServer, runID, err.Error())
		}
		result.Exports = exports
	}

	result.CompletedAt = time.Now()

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()

	logger.WithFields(log.Fields{
		"duration":    result.CompletedAt.Sub(result.StartedAt).String(),
		"output_rows": result.OutputRows,
		"sales_files": len(result.SalesFiles),
		"exports":     len(result.Exports),
	}).Info("Pipeline de reconciliação concluído")

	return result, nil
}

// LastResult devolve o resultado da última execução concluída
func (s *Service) LastResult() (*domain.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return nil, ErrNoResult
	}
	return s.last, nil
}

func totals(aggregation *domain.SalesAggregation) (float64, float64) {
	amount, volume := decimal.Zero, decimal.Zero
	for _, c := range aggregation.Customers {
		amount = amount.Add(c.TotalAmount)
		volume = volume.Add(c.TotalVolume)
	}
	return utils.RoundWithTwoDecimalPlace(amount), utils.RoundWithTwoDecimalPlace(volume)
}
