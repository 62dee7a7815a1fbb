package cli

import (
	"github.com/spf13/cobra"

	"github.com/dimun/agendalo/internal/shared/infrastructure/database"
	_ "github.com/dimun/agendalo/internal/shared/infrastructure/database/postgres"
	_ "github.com/dimun/agendalo/internal/shared/infrastructure/database/sqlite"
	"github.com/dimun/agendalo/internal/shared/infrastructure/migrations"
	"github.com/dimun/agendalo/pkg/config"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conn, err := database.NewConnection(ctx, database.Config{
				URL:        cfg.DatabaseURL,
				SQLitePath: cfg.SQLitePath,
				MaxConns:   cfg.DBMaxConns,
			})
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := migrations.Run(ctx, conn); err != nil {
				return err
			}
			logger.Info("migrations applied", "driver", string(conn.Driver()))
			return nil
		},
	}
}
