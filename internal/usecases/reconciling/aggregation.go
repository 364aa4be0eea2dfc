package reconciling

import (
	"sort"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/shopspring/decimal"
)

// AggregateSales agrupa as vendas por cliente e marca e calcula totais e médias por mês.
//
// Os totais de cada cliente vêm das linhas limpas, antes do agrupamento por marca.
// Combinações cliente×marca sem venda valem 0. Período não definido usa 1 mês como divisor.
func AggregateSales(t *domain.Table, cols domain.SalesColumns, period domain.Period, logger log.Logger) *domain.SalesAggregation {
	logger = loggerOrDefault(logger)

	result := &domain.SalesAggregation{
		Brands:        []string{},
		Customers:     []domain.CustomerSales{},
		Months:        period.Months(),
		PeriodDefined: period.IsDefined(),
	}

	if !result.PeriodDefined {
		logger.Warn("Período não definido, será usado 1 mês como divisor das médias")
	}

	if t.IsEmpty() {
		logger.Warn("Nenhuma venda para agregar")
		return result
	}

	if overlappingColumns(cols) {
		logger.WithFields(log.Fields{
			"customer_column": cols.Customer,
			"brand_column":    cols.Brand,
			"amount_column":   cols.Amount,
			"volume_column":   cols.Volume,
		}).Warn("Colunas de venda repetidas entre cliente, marca, valor e volume, nenhuma venda será agregada")
		return result
	}

	if !t.HasColumn(cols.Customer) || !t.HasColumn(cols.Brand) {
		logger.WithFields(log.Fields{
			"customer_column": cols.Customer,
			"brand_column":    cols.Brand,
		}).Warn("Colunas de cliente ou marca ausentes nas vendas, todas as linhas serão descartadas")
	}

	cleaned, dropped := CleanSales(t, cols.Customer, cols.Brand)
	if dropped > 0 {
		logger.Warnf("%d linhas de venda sem cliente ou marca foram descartadas", dropped)
	}

	coerced, replaced := CoerceNumeric(cleaned, cols.Amount, cols.Volume)
	if replaced > 0 {
		logger.Warnf("%d valores não numéricos de venda foram substituídos por 0", replaced)
	}

	result.DroppedRows = dropped
	result.CoercedValues = replaced

	customers := make(map[string]*domain.CustomerSales)
	brands := make(map[string]struct{})

	for _, row := range coerced.Rows {
		customer, okCustomer := row[cols.Customer].(string)
		label, okBrand := row[cols.Brand].(string)
		amount, okAmount := row[cols.Amount].(decimal.Decimal)
		volume, okVolume := row[cols.Volume].(decimal.Decimal)
		if !okCustomer || !okBrand || !okAmount || !okVolume {
			continue
		}
		brand := domain.BrandSlug(label)

		sales, ok := customers[customer]
		if !ok {
			sales = &domain.CustomerSales{
				Customer:    customer,
				BrandAmount: make(map[string]decimal.Decimal),
				BrandVolume: make(map[string]decimal.Decimal),
			}
			customers[customer] = sales
		}

		sales.TotalAmount = sales.TotalAmount.Add(amount)
		sales.TotalVolume = sales.TotalVolume.Add(volume)
		sales.BrandAmount[brand] = sales.BrandAmount[brand].Add(amount)
		sales.BrandVolume[brand] = sales.BrandVolume[brand].Add(volume)
		brands[brand] = struct{}{}
	}

	for brand := range brands {
		result.Brands = append(result.Brands, brand)
	}
	sort.Strings(result.Brands)

	months := decimal.NewFromInt(int64(result.Months))
	for _, sales := range customers {
		for _, brand := range result.Brands {
			if _, ok := sales.BrandAmount[brand]; !ok {
				sales.BrandAmount[brand] = decimal.Zero
				sales.BrandVolume[brand] = decimal.Zero
			}
		}
		sales.AvgAmount = sales.TotalAmount.Div(months)
		sales.AvgVolume = sales.TotalVolume.Div(months)
		result.Customers = append(result.Customers, *sales)
	}
	sort.Slice(result.Customers, func(i, j int) bool {
		return result.Customers[i].Customer < result.Customers[j].Customer
	})

	logger.WithFields(log.Fields{
		"customers": len(result.Customers),
		"brands":    len(result.Brands),
		"months":    result.Months,
	}).Info("Vendas agregadas por cliente e marca")

	return result
}

func loggerOrDefault(logger log.Logger) log.Logger {
	if logger == nil {
		return log.L
	}
	return logger
}

// overlappingColumns indica se duas funções de coluna de venda apontam para o mesmo nome
func overlappingColumns(cols domain.SalesColumns) bool {
	names := []string{cols.Customer, cols.Brand, cols.Amount, cols.Volume}
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if names[i] == names[j] {
				return true
			}
		}
	}
	return false
}
