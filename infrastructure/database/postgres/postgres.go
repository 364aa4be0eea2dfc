package postgres

import (
	"context"
	"database/sql"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/config"
	_ "github.com/lib/pq"
)

// Connection é a conexão usada para ler as tabelas de entrada do pipeline
type Connection struct {
	*sql.DB
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}
