package reconciling

import (
	"math"
	"testing"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanSales(t *testing.T) {
	tests := []struct {
		name            string
		table           *domain.Table
		expectedRows    []domain.Row
		expectedDropped int
	}{
		{
			name: "Remove linhas sem cliente ou marca e apara os valores",
			table: &domain.Table{
				Columns: []string{"Cliente", "Marca", "Venta $"},
				Rows: []domain.Row{
					{"Cliente": " 001 ", "Marca": "Zenu", "Venta $": "10"},
					{"Cliente": nil, "Marca": "Rica", "Venta $": "5"},
					{"Cliente": "002", "Marca": "   ", "Venta $": "7"},
					{"Cliente": 123.0, "Marca": " Rica ", "Venta $": "3"},
				},
			},
			expectedRows: []domain.Row{
				{"Cliente": "001", "Marca": "Zenu", "Venta $": "10"},
				{"Cliente": "123", "Marca": "Rica", "Venta $": "3"},
			},
			expectedDropped: 2,
		},
		{
			name: "Coluna de marca ausente remove todas as linhas",
			table: &domain.Table{
				Columns: []string{"Cliente"},
				Rows: []domain.Row{
					{"Cliente": "001"},
					{"Cliente": "002"},
				},
			},
			expectedRows:    []domain.Row{},
			expectedDropped: 2,
		},
		{
			name:            "Tabela vazia",
			table:           domain.NewTable("Cliente", "Marca"),
			expectedRows:    []domain.Row{},
			expectedDropped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, dropped := CleanSales(tt.table, "Cliente", "Marca")

			assert.Equal(t, tt.expectedDropped, dropped)
			assert.Equal(t, tt.expectedRows, cleaned.Rows)
			assert.Equal(t, tt.table.Columns, cleaned.Columns)
		})
	}
}

func TestCleanSales_DoesNotModifyInput(t *testing.T) {
	table := domain.NewTable("Cliente", "Marca")
	table.AppendRow(domain.Row{"Cliente": " 001 ", "Marca": "Zenu"})

	CleanSales(table, "Cliente", "Marca")

	assert.Equal(t, " 001 ", table.Rows[0]["Cliente"])
}

func TestCoerceNumeric(t *testing.T) {
	table := domain.NewTable("Venta $")
	for _, v := range []any{"10", " 2.5 ", "abc", nil, math.NaN(), 3, 4.5, math.Inf(1)} {
		table.AppendRow(domain.Row{"Venta $": v})
	}

	coerced, count := CoerceNumeric(table, "Venta $")

	assert.Equal(t, 4, count)
	expected := []string{"10", "2.5", "0", "0", "0", "3", "4.5", "0"}
	require.Equal(t, len(expected), coerced.Len())
	for i, row := range coerced.Rows {
		value, ok := row["Venta $"].(decimal.Decimal)
		require.True(t, ok, "linha %d deve ser decimal", i)
		assert.True(t, decimal.RequireFromString(expected[i]).Equal(value), "linha %d: %s", i, value)
	}

	assert.Equal(t, "abc", table.Rows[2]["Venta $"], "a tabela original não deve ser alterada")
}

func TestCoerceNumeric_MissingColumnIsZero(t *testing.T) {
	table := domain.NewTable("Cliente")
	table.AppendRow(domain.Row{"Cliente": "1"})

	coerced, count := CoerceNumeric(table, "Venta Kg")

	assert.Equal(t, 0, count)
	assert.True(t, coerced.HasColumn("Venta Kg"))
	assert.True(t, decimal.Zero.Equal(coerced.Rows[0]["Venta Kg"].(decimal.Decimal)))
}

func TestCleanAndCoerce_Idempotent(t *testing.T) {
	table := domain.NewTable("Cliente", "Marca", "Venta $", "Venta Kg")
	table.AppendRow(domain.Row{"Cliente": " 1", "Marca": "Zenu ", "Venta $": "10.5", "Venta Kg": "x"})
	table.AppendRow(domain.Row{"Cliente": "2", "Marca": nil, "Venta $": 1.0, "Venta Kg": 2.0})

	cleaned, _ := CleanSales(table, "Cliente", "Marca")
	first, _ := CoerceNumeric(cleaned, "Venta $", "Venta Kg")

	cleanedAgain, dropped := CleanSales(first, "Cliente", "Marca")
	second, count := CoerceNumeric(cleanedAgain, "Venta $", "Venta Kg")

	assert.Equal(t, 0, dropped)
	assert.Equal(t, 0, count)
	assert.Equal(t, first, second)
}

func TestDropDuplicates(t *testing.T) {
	table := domain.NewTable("id", "nome")
	table.AppendRow(domain.Row{"id": "1", "nome": "A"})
	table.AppendRow(domain.Row{"id": "1", "nome": "B"})
	table.AppendRow(domain.Row{"id": "2", "nome": "A"})
	table.AppendRow(domain.Row{"id": nil, "nome": "C"})
	table.AppendRow(domain.Row{"id": nil, "nome": "D"})

	t.Run("Por coluna mantém a primeira ocorrência", func(t *testing.T) {
		out, dropped := DropDuplicates(table, "id")

		assert.Equal(t, 2, dropped)
		assert.Equal(t, []any{"A", "A", "C"}, out.Values("nome"))
	})

	t.Run("Sem colunas compara a linha inteira", func(t *testing.T) {
		out, dropped := DropDuplicates(table)

		assert.Equal(t, 0, dropped)
		assert.Equal(t, 5, out.Len())
	})
}
