package main

import (
	"context"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/infrastructure/database/postgres"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/infrastructure/repository"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/infrastructure/tabular"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/config"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/usecases/reconciling"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/pkg/errors"
)

// application reúne as dependências montadas a partir da configuração
type application struct {
	cfg        *config.Config
	conn       *postgres.Connection
	reconciler *reconciling.Service
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootFlags.configPath, rootFlags.editablePath)
	if err != nil {
		return nil, configFailure(err)
	}

	log.Configure(cfg.App.LogLevel)
	log.L.Infof("Nível de log configurado para: %s", cfg.App.LogLevel)
	return cfg, nil
}

// configFailure registra a falha de configuração no nível fatal, o que encerra o processo
func configFailure(err error) error {
	log.L.WithError(err).Fatal("Falha crítica ao carregar a configuração")
	return err
}

func bootstrap(ctx context.Context, cfg *config.Config) (*application, error) {
	app := &application{cfg: cfg}

	var repo repository.TableRepository
	if cfg.UsesDatabase() {
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao conectar ao PostgreSQL")
		}
		log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")

		app.conn = conn
		repo = repository.NewTableRepository(conn)
	}

	app.reconciler = reconciling.NewService(
		newTableSource(cfg.Sources.Universe, repo),
		newTableSource(cfg.Sources.Partners, repo),
		tabular.NewSalesLoader(log.L),
		tabular.NewFileExporter(cfg.Export.Dir, log.L),
		pipelineSettings(cfg),
		log.L,
	)

	return app, nil
}

func (a *application) Close() {
	if a.conn == nil {
		return
	}
	if err := a.conn.Close(); err != nil {
		log.L.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
	}
}

func newTableSource(source config.Source, repo repository.TableRepository) reconciling.TableSource {
	if source.Kind == config.SourceKindPostgres && repo != nil {
		return repository.NewTableSource(repo, source.Table)
	}
	return tabular.NewFileSource(source.Path, source.Sheet)
}

func pipelineSettings(cfg *config.Config) reconciling.Settings {
	return reconciling.Settings{
		Columns:       cfg.Columns,
		SalesColumns:  cfg.Sales.Columns,
		Enrichment:    cfg.Enrichment,
		Period:        cfg.Period,
		Join:          cfg.JoinType(),
		SalesDir:      cfg.Sales.Dir,
		DedupRoster:   cfg.Pipeline.DedupRoster,
		ExportFormats: cfg.Export.Formats,
	}
}
