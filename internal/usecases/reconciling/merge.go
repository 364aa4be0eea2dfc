package reconciling

import (
	"strings"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/pkg/errors"
)

// MergeSalesIntoUniverse junta as vendas agregadas ao universo pelo id do cliente.
// As chaves dos dois lados são convertidas para texto e aparadas antes da junção.
// A comparação diferencia maiúsculas de minúsculas.
func MergeSalesIntoUniverse(universe, sales *domain.Table, universeCol, salesCol string, how domain.JoinType) (*domain.Table, error) {
	if salesCol == "" {
		salesCol = domain.CustomerColumn
	}
	if how == "" {
		how = domain.JoinLeft
	}

	if !universe.HasColumn(universeCol) {
		return nil, errors.Wrapf(domain.ErrColumnNotFound, "coluna %q do universo", universeCol)
	}
	if !sales.HasColumn(salesCol) {
		return nil, errors.Wrapf(domain.ErrColumnNotFound, "coluna %q das vendas", salesCol)
	}

	merged, err := domain.Join(trimKey(universe, universeCol), trimKey(sales, salesCol), universeCol, salesCol, how)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao juntar vendas ao universo")
	}

	return merged, nil
}

// trimKey devolve uma cópia com a coluna convertida para texto sem espaços nas pontas
func trimKey(t *domain.Table, col string) *domain.Table {
	out := t.Clone()
	for _, row := range out.Rows {
		if s, ok := domain.CellString(row[col]); ok {
			row[col] = strings.TrimSpace(s)
		} else {
			row[col] = nil
		}
	}
	return out
}
