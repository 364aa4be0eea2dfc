package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/spf13/cobra"
)

var runFlags struct {
	salesDir string
	formats  []string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executa o pipeline uma vez e exporta o universo complementado",
	RunE:  runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.salesDir, "sales-dir", "", "Diretório dos arquivos de vendas (sobrescreve sales.dir)")
	runCmd.Flags().StringSliceVar(&runFlags.formats, "formats", nil, "Formatos de exportação: csv, xlsx, parquet (sobrescreve export.formats)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if runFlags.salesDir != "" {
		cfg.Sales.Dir = runFlags.salesDir
	}
	if len(runFlags.formats) > 0 {
		cfg.Export.Formats = runFlags.formats
		if err := cfg.Validate(); err != nil {
			return configFailure(err)
		}
	}

	app, err := bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.reconciler.Run(ctx)
	if err != nil {
		return err
	}

	log.L.WithFields(log.Fields{
		"run_id":       result.ID,
		"output_rows":  result.OutputRows,
		"brands":       len(result.Brands),
		"months":       result.Months,
		"total_amount": result.TotalAmount,
		"total_volume": result.TotalVolume,
		"exports":      result.Exports,
	}).Info("Universo directa gerado")

	return nil
}
