package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"todo-api/handlers"
	"todo-api/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	todos, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	router := server.NewRouter(server.Options{
		Store:       todos,
		Zone:        handlers.NewZoneProxy(cfg.MetadataURL, nil),
		Logger:      slog.Default(),
		CORSOrigins: cfg.CORSOrigins,
	})
	return server.Run(ctx, cfg.Addr(), router)
}
