package main

import (
	"context"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/api"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/scheduler"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/usecases/authenticating"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP e o agendador do pipeline",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	authenticator := authenticating.NewService(cfg.Auth)

	pipelineSyncService := scheduler.NewPipelineSyncService(app.reconciler, cfg.Pipeline)
	if err := pipelineSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador do pipeline")
	} else {
		log.L.Info("Agendador do pipeline iniciado com sucesso")
	}

	server, err := api.New(cfg, authenticator, app.reconciler, pipelineSyncService)
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
