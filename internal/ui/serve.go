package ui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/logging"
	"github.com/javiermolinar/rocinante/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Run the HTTP API over the local database until interrupted.

Other rocinante installs can read this server's activity feed by setting
activity.base_url.`,
		Example: `  rocinante serve
  rocinante serve --addr=0.0.0.0:9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = a.config.Server.Addr
			}

			logger := logging.Setup(a.config.Server.LogLevel, os.Stderr)
			srv := server.New(a.repo, nil, server.Options{
				OverflowLimit: a.config.Calendar.OverflowLimit,
				WeekStart:     a.config.WeekStartDay(),
			}, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
