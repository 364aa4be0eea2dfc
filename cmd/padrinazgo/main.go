package main

import (
	"os"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/config"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	configPath   string
	editablePath string
}

var rootCmd = &cobra.Command{
	Use:           "padrinazgo",
	Short:         "Reconciliação do universo directa com a base de sócios e as vendas",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlags.configPath, "config", "c", config.DefaultConfigPath, "Arquivo de configuração YAML")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.editablePath, "editable", "e", config.DefaultEditablePath, "Arquivo com o período editável")

	rootCmd.AddCommand(runCmd, serveCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.L.WithError(err).Error("Execução encerrada com erro")
		os.Exit(1)
	}
}
