package domain

import (
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/utils"
	"github.com/shopspring/decimal"
)

// Colunas canônicas da tabela de vendas agregadas
const (
	CustomerColumn    = "customer"
	TotalAmountColumn = "total_amount"
	TotalVolumeColumn = "total_volume"
	AvgAmountColumn   = "avg_amount_per_period"
	AvgVolumeColumn   = "avg_volume_per_period"
)

// SalesColumns mapeia os papéis lógicos para os nomes reais das colunas dos arquivos de venda
type SalesColumns struct {
	Customer string `mapstructure:"customer" json:"customer"`
	Brand    string `mapstructure:"brand" json:"brand"`
	Amount   string `mapstructure:"amount" json:"amount"`
	Volume   string `mapstructure:"volume" json:"volume"`
}

func DefaultSalesColumns() SalesColumns {
	return SalesColumns{
		Customer: "Cliente",
		Brand:    "Marca",
		Amount:   "Venta $",
		Volume:   "Venta Kg",
	}
}

// BrandSlug normaliza o rótulo da marca para compor nomes de coluna
func BrandSlug(label string) string {
	return utils.Slugify(label)
}

func BrandAmountColumn(slug string) string {
	return "sales_" + slug + "_amount"
}

func BrandVolumeColumn(slug string) string {
	return "sales_" + slug + "_volume"
}

// CustomerSales é a linha agregada de um cliente
type CustomerSales struct {
	Customer    string
	TotalAmount decimal.Decimal
	TotalVolume decimal.Decimal
	BrandAmount map[string]decimal.Decimal // chave: slug da marca
	BrandVolume map[string]decimal.Decimal
	AvgAmount   decimal.Decimal
	AvgVolume   decimal.Decimal
}

// SalesAggregation é o resultado do motor de agregação
type SalesAggregation struct {
	Brands        []string // slugs ordenados
	Customers     []CustomerSales
	Months        int
	PeriodDefined bool
	DroppedRows   int // linhas sem cliente ou marca
	CoercedValues int // valores não numéricos substituídos por 0
}

func (a *SalesAggregation) IsEmpty() bool {
	return a == nil || len(a.Customers) == 0
}

// Columns devolve as colunas da tabela larga na ordem de saída
func (a *SalesAggregation) Columns() []string {
	columns := []string{CustomerColumn, TotalAmountColumn, TotalVolumeColumn}
	for _, brand := range a.Brands {
		columns = append(columns, BrandAmountColumn(brand))
	}
	for _, brand := range a.Brands {
		columns = append(columns, BrandVolumeColumn(brand))
	}
	return append(columns, AvgAmountColumn, AvgVolumeColumn)
}

// Table converte a agregação para a tabela larga. Combinações cliente×marca ausentes valem 0.
func (a *SalesAggregation) Table() *Table {
	t := NewTable(a.Columns()...)
	for _, c := range a.Customers {
		row := Row{
			CustomerColumn:    c.Customer,
			TotalAmountColumn: c.TotalAmount.InexactFloat64(),
			TotalVolumeColumn: c.TotalVolume.InexactFloat64(),
			AvgAmountColumn:   c.AvgAmount.InexactFloat64(),
			AvgVolumeColumn:   c.AvgVolume.InexactFloat64(),
		}
		for _, brand := range a.Brands {
			row[BrandAmountColumn(brand)] = c.BrandAmount[brand].InexactFloat64()
			row[BrandVolumeColumn(brand)] = c.BrandVolume[brand].InexactFloat64()
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
