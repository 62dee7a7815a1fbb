// Package cli implements the agendalo command line interface.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dimun/agendalo/pkg/config"
	"github.com/dimun/agendalo/pkg/observability"
)

var logger *slog.Logger

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "agendalo",
	Short: "Agendalo - shift agenda generation service",
	Long: `Agendalo generates draft shift agendas for a role from staff
availability and required business service hours, optimizing for
coverage, idle gaps, or workload balance.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger = observability.NewLoggerForEnv(cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(logger)

	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newMigrateCmd(cfg))
	rootCmd.AddCommand(newSeedCmd(cfg))

	return rootCmd.Execute()
}
