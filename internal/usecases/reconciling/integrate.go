package reconciling

import (
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
)

// IntegrationSettings reúne o que a integração das vendas precisa da configuração
type IntegrationSettings struct {
	SalesColumns domain.SalesColumns
	Period       domain.Period
	UniverseKey  string
	Join         domain.JoinType
}

// IntegrateSales agrega as vendas e junta o resultado ao universo.
// Sem vendas o universo é devolvido sem alterações.
func IntegrateSales(universe, sales *domain.Table, settings IntegrationSettings, logger log.Logger) (*domain.Table, *domain.SalesAggregation, error) {
	logger = loggerOrDefault(logger)

	if sales.IsEmpty() {
		logger.Warn("Sem vendas para integrar, o universo será mantido sem alterações")
		return universe.Clone(), &domain.SalesAggregation{
			Brands:        []string{},
			Customers:     []domain.CustomerSales{},
			Months:        settings.Period.Months(),
			PeriodDefined: settings.Period.IsDefined(),
		}, nil
	}

	aggregation := AggregateSales(sales, settings.SalesColumns, settings.Period, logger)
	aggregated := aggregation.Table()
	logger.Debugf("Colunas agregadas: %v", aggregated.Columns)

	merged, err := MergeSalesIntoUniverse(universe, aggregated, settings.UniverseKey, domain.CustomerColumn, settings.Join)
	if err != nil {
		return nil, nil, err
	}

	logger.WithFields(log.Fields{
		"period": settings.Period.Label(),
		"rows":   merged.Len(),
	}).Info("Vendas integradas ao universo")

	return merged, aggregation, nil
}
