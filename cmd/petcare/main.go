package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title Petcare API
// @version 1.0
// @description Registro de mascotas con HN por owner, historial de enfermedades con diagnóstico preliminar y reportes PDF.
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "petcare",
		Short:         "Pet records service: HN registry, illness history, PDF reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "petcare.yaml", "path to the YAML config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
		newLookupCmd(&configPath),
	)
	return root
}
