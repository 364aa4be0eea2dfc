package reconciling

import (
	"math"
	"strings"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/shopspring/decimal"
)

// CleanSales remove as linhas sem cliente ou sem marca.
// As duas colunas são convertidas para texto sem espaços nas pontas; texto vazio conta como ausente.
// Se alguma das colunas não existir nenhuma linha tem identidade e todas são removidas.
func CleanSales(t *domain.Table, customerCol, brandCol string) (*domain.Table, int) {
	if !t.HasColumn(customerCol) || !t.HasColumn(brandCol) {
		out := t.Clone()
		dropped := out.Len()
		out.Rows = out.Rows[:0]
		return out, dropped
	}

	out := domain.NewTable(t.Columns...)
	dropped := 0
	for _, row := range t.Rows {
		customer, okCustomer := trimmedCell(row[customerCol])
		brand, okBrand := trimmedCell(row[brandCol])
		if !okCustomer || !okBrand {
			dropped++
			continue
		}

		cleaned := make(domain.Row, len(row))
		for k, v := range row {
			cleaned[k] = v
		}
		cleaned[customerCol] = customer
		cleaned[brandCol] = brand
		out.Rows = append(out.Rows, cleaned)
	}

	return out, dropped
}

// CoerceNumeric converte as colunas para decimal.
// Valores nulos, NaN, infinitos ou não numéricos viram 0 e são contados no segundo retorno.
// Coluna ausente é criada com zeros.
func CoerceNumeric(t *domain.Table, columns ...string) (*domain.Table, int) {
	out := t.Clone()
	coerced := 0

	for _, col := range columns {
		missing := !out.HasColumn(col)
		out.AddColumn(col)

		for _, row := range out.Rows {
			value, ok := toDecimal(row[col])
			if !ok {
				value = decimal.Zero
				if !missing {
					coerced++
				}
			}
			row[col] = value
		}
	}

	return out, coerced
}

// DropDuplicates mantém a primeira ocorrência de cada combinação das colunas.
// Sem colunas informadas, todas as colunas da tabela são comparadas.
func DropDuplicates(t *domain.Table, columns ...string) (*domain.Table, int) {
	if len(columns) == 0 && t != nil {
		columns = t.Columns
	}

	out := domain.NewTable()
	if t != nil {
		out.Columns = append(out.Columns, t.Columns...)
	}

	seen := make(map[string]struct{}, t.Len())
	dropped := 0
	for _, row := range rowsOf(t) {
		key := rowKey(row, columns)
		if _, ok := seen[key]; ok {
			dropped++
			continue
		}
		seen[key] = struct{}{}

		copied := make(domain.Row, len(row))
		for k, v := range row {
			copied[k] = v
		}
		out.Rows = append(out.Rows, copied)
	}

	return out, dropped
}

func rowsOf(t *domain.Table) []domain.Row {
	if t == nil {
		return nil
	}
	return t.Rows
}

func rowKey(row domain.Row, columns []string) string {
	var sb strings.Builder
	for i, col := range columns {
		if i > 0 {
			sb.WriteByte(0x1f)
		}
		if s, ok := domain.CellString(row[col]); ok {
			sb.WriteByte('v')
			sb.WriteString(s)
		} else {
			sb.WriteByte('n')
		}
	}
	return sb.String()
}

// trimmedCell devolve a célula como texto sem espaços nas pontas; nulo ou vazio não é válido
func trimmedCell(v any) (string, bool) {
	s, ok := domain.CellString(v)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return value, true
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(value), true
	case float32:
		f := float64(value)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(value), true
	case int:
		return decimal.NewFromInt(int64(value)), true
	case int32:
		return decimal.NewFromInt32(value), true
	case int64:
		return decimal.NewFromInt(value), true
	case bool:
		return decimal.Zero, false
	case string:
		return parseDecimal(value)
	case []byte:
		return parseDecimal(string(value))
	default:
		s, _ := domain.CellString(value)
		return parseDecimal(s)
	}
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
