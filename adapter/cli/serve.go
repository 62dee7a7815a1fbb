package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dimun/agendalo/adapter/api"
	"github.com/dimun/agendalo/internal/app"
	"github.com/dimun/agendalo/pkg/config"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			container, err := app.NewContainer(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer container.Close()

			handler := api.NewHandler(
				container.PersonRepo,
				container.RoleRepo,
				container.AvailabilityRepo,
				container.BusinessRepo,
				container.AgendaService,
				container.CalendarService,
				logger,
			)
			serverCfg := api.DefaultServerConfig()
			serverCfg.Addr = cfg.HTTPAddr
			server := api.NewServer(serverCfg, handler, logger)

			errCh := make(chan error, 1)
			go func() {
				if err := server.Start(); !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
