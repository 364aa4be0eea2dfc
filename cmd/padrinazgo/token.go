package main

import (
	"fmt"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/usecases/authenticating"
	"github.com/spf13/cobra"
)

var tokenFlags struct {
	email string
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite um JWT para um operador configurado",
	RunE:  issueToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.email, "email", "", "Email do operador")
	_ = tokenCmd.MarkFlagRequired("email")
}

func issueToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := authenticating.NewService(cfg.Auth).GenerateToken(tokenFlags.email)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
