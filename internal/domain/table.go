// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Row é uma linha de tabela indexada pelo nome da coluna. Chave ausente ou valor nil é nulo.
type Row map[string]any

// Table é uma tabela em memória com colunas ordenadas.
// Cada etapa do pipeline devolve uma nova Table, sem alterar a de entrada.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

func NewTable(columns ...string) *Table {
	return &Table{
		Columns: slices.Clone(columns),
		Rows:    make([]Row, 0),
	}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	return slices.Contains(t.Columns, name)
}

// AddColumn acrescenta a coluna ao final, se ainda não existir
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// AppendRow adiciona uma linha registrando colunas ainda desconhecidas
func (t *Table) AppendRow(row Row) {
	for col := range row {
		if !t.HasColumn(col) {
			t.Columns = append(t.Columns, col)
		}
	}
	t.Rows = append(t.Rows, row)
}

// Clone devolve uma cópia independente da tabela. Os valores das células são imutáveis.
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}

	out := &Table{
		Columns: slices.Clone(t.Columns),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = cloneRow(row)
	}
	return out
}

// DropColumns devolve uma cópia sem as colunas informadas; nomes ausentes são ignorados
func (t *Table) DropColumns(names ...string) *Table {
	out := t.Clone()
	if len(names) == 0 {
		return out
	}

	out.Columns = slices.DeleteFunc(out.Columns, func(col string) bool {
		return slices.Contains(names, col)
	})
	for _, row := range out.Rows {
		for _, name := range names {
			delete(row, name)
		}
	}
	return out
}

// Select devolve uma cópia apenas com as colunas informadas que existem na tabela
func (t *Table) Select(names ...string) *Table {
	columns := make([]string, 0, len(names))
	for _, name := range names {
		if t.HasColumn(name) && !slices.Contains(columns, name) {
			columns = append(columns, name)
		}
	}

	out := NewTable(columns...)
	for _, row := range t.Rows {
		selected := make(Row, len(columns))
		for _, col := range columns {
			selected[col] = row[col]
		}
		out.Rows = append(out.Rows, selected)
	}
	return out
}

// Values devolve os valores de uma coluna na ordem das linhas
func (t *Table) Values(column string) []any {
	values := make([]any, t.Len())
	for i, row := range t.Rows {
		values[i] = row[column]
	}
	return values
}

// Concat empilha tabelas unindo as colunas; células sem valor ficam nulas
func Concat(tables ...*Table) *Table {
	out := NewTable()
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, col := range t.Columns {
			out.AddColumn(col)
		}
		for _, row := range t.Rows {
			out.Rows = append(out.Rows, cloneRow(row))
		}
	}
	return out
}

func cloneRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// CellString devolve a representação textual canônica de uma célula.
// O segundo retorno é false quando a célula é nula (nil ou NaN).
func CellString(v any) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", false
	case string:
		return value, true
	case []byte:
		return string(value), true
	case float64:
		if math.IsNaN(value) {
			return "", false
		}
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case float32:
		if math.IsNaN(float64(value)) {
			return "", false
		}
		return strconv.FormatFloat(float64(value), 'f', -1, 32), true
	case int:
		return strconv.Itoa(value), true
	case int32:
		return strconv.FormatInt(int64(value), 10), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case bool:
		return strconv.FormatBool(value), true
	case decimal.Decimal:
		return value.String(), true
	case time.Time:
		return value.Format(time.RFC3339), true
	default:
		return fmt.Sprint(value), true
	}
}
