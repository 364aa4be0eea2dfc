package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type JoinType string

const (
	JoinLeft  JoinType = "left"
	JoinInner JoinType = "inner"
	JoinRight JoinType = "right"
	JoinOuter JoinType = "outer"

	leftSuffix  = "_x"
	rightSuffix = "_y"
)

var (
	ErrColumnNotFound  = errors.New("coluna não encontrada")
	ErrInvalidJoinType = errors.New("tipo de junção inválido")
)

// ParseJoinType converte o texto da configuração em JoinType; vazio significa left
func ParseJoinType(s string) (JoinType, error) {
	switch how := JoinType(strings.ToLower(strings.TrimSpace(s))); how {
	case "":
		return JoinLeft, nil
	case JoinLeft, JoinInner, JoinRight, JoinOuter:
		return how, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidJoinType, s)
	}
}

// Join combina duas tabelas pela igualdade exata das chaves (CellString).
//
// Colunas: as da esquerda seguidas das da direita. Quando as chaves têm o mesmo nome a chave da
// direita não é repetida; demais nomes em conflito recebem os sufixos "_x" e "_y".
// Linhas: cada linha da esquerda na ordem original seguida das correspondências na ordem da
// direita; em right/outer as linhas da direita sem par vão para o final. Chaves nulas não casam.
func Join(left, right *Table, leftKey, rightKey string, how JoinType) (*Table, error) {
	if !slices.Contains([]JoinType{JoinLeft, JoinInner, JoinRight, JoinOuter}, how) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJoinType, how)
	}
	if !left.HasColumn(leftKey) {
		return nil, fmt.Errorf("%w: %s (tabela da esquerda)", ErrColumnNotFound, leftKey)
	}
	if !right.HasColumn(rightKey) {
		return nil, fmt.Errorf("%w: %s (tabela da direita)", ErrColumnNotFound, rightKey)
	}

	sharedKey := leftKey == rightKey

	rightCols := make([]string, 0, len(right.Columns))
	for _, col := range right.Columns {
		if sharedKey && col == rightKey {
			continue
		}
		rightCols = append(rightCols, col)
	}

	leftNames := make(map[string]string, len(left.Columns))
	out := NewTable()
	for _, col := range left.Columns {
		name := col
		if slices.Contains(rightCols, col) {
			name = col + leftSuffix
		}
		leftNames[col] = name
		out.AddColumn(name)
	}

	rightNames := make(map[string]string, len(rightCols))
	for _, col := range rightCols {
		name := col
		if slices.Contains(left.Columns, col) {
			name = col + rightSuffix
		}
		rightNames[col] = name
		out.AddColumn(name)
	}

	index := make(map[string][]int, right.Len())
	for i, row := range right.Rows {
		if key, ok := CellString(row[rightKey]); ok {
			index[key] = append(index[key], i)
		}
	}

	merge := func(l, r Row) Row {
		row := make(Row, len(out.Columns))
		for _, col := range left.Columns {
			if l != nil {
				row[leftNames[col]] = l[col]
			} else {
				row[leftNames[col]] = nil
			}
		}
		for _, col := range rightCols {
			if r != nil {
				row[rightNames[col]] = r[col]
			} else {
				row[rightNames[col]] = nil
			}
		}
		if sharedKey && l == nil && r != nil {
			row[leftNames[leftKey]] = r[rightKey]
		}
		return row
	}

	matched := make([]bool, right.Len())
	for _, l := range left.Rows {
		var matches []int
		if key, ok := CellString(l[leftKey]); ok {
			matches = index[key]
		}

		if len(matches) == 0 {
			if how == JoinLeft || how == JoinOuter {
				out.Rows = append(out.Rows, merge(l, nil))
			}
			continue
		}

		for _, i := range matches {
			matched[i] = true
			out.Rows = append(out.Rows, merge(l, right.Rows[i]))
		}
	}

	if how == JoinRight || how == JoinOuter {
		for i, r := range right.Rows {
			if !matched[i] {
				out.Rows = append(out.Rows, merge(nil, r))
			}
		}
	}

	return out, nil
}
