package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/infrastructure/database/postgres"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

//go:generate mockgen -source=table.go -destination=mocks/table_mock.go -package=mocks

var ErrInvalidTableName = errors.New("nome de tabela inválido")

// TableRepository lê tabelas inteiras do banco para o pipeline
type TableRepository interface {
	LoadTable(ctx context.Context, table string) (*domain.Table, error)
}

type tableRepository struct {
	conn postgres.Queryer
}

func NewTableRepository(conn postgres.Queryer) TableRepository {
	return &tableRepository{
		conn: conn,
	}
}

// LoadTable executa SELECT * na tabela e devolve as colunas na ordem do banco
func (r *tableRepository) LoadTable(ctx context.Context, table string) (*domain.Table, error) {
	query, args, err := selectAllSQL(table)
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao consultar tabela %s", table)
	}
	defer rows.Close()

	t, err := scanTable(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler linhas da tabela %s", table)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"table": table,
		"rows":  t.Len(),
	}).Info("Tabela carregada do banco de dados")

	return t, nil
}

// selectAllSQL monta o SELECT com o identificador citado; aceita "schema.tabela"
func selectAllSQL(table string) (string, []interface{}, error) {
	parts := strings.Split(strings.TrimSpace(table), ".")
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			return "", nil, errors.Wrap(ErrInvalidTableName, table)
		}
		parts[i] = pq.QuoteIdentifier(strings.TrimSpace(part))
	}

	return squirrel.
		Select("*").
		From(strings.Join(parts, ".")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

type rowScanner interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanTable(rows rowScanner) (*domain.Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	t := domain.NewTable(columns...)
	values := make([]interface{}, len(columns))
	pointers := make([]interface{}, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(domain.Row, len(columns))
		for i, col := range columns {
			row[col] = cellValue(values[i])
		}
		t.Rows = append(t.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// cellValue converte o valor do driver para um tipo de célula da tabela
func cellValue(v interface{}) any {
	switch value := v.(type) {
	case []byte:
		return string(value)
	case int32:
		return int64(value)
	case float32:
		return float64(value)
	case time.Time, string, int64, float64, bool, nil:
		return value
	default:
		s, _ := domain.CellString(value)
		return s
	}
}

// TableSource carrega o universo ou a base de sócios de uma tabela do banco
type TableSource struct {
	repo  TableRepository
	table string
}

func NewTableSource(repo TableRepository, table string) *TableSource {
	return &TableSource{repo: repo, table: table}
}

func (s *TableSource) Load(ctx context.Context) (*domain.Table, error) {
	return s.repo.LoadTable(ctx, s.table)
}
