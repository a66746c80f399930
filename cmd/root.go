// Package cmd holds the todo-api command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"todo-api/config"
	"todo-api/db"
	"todo-api/store"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "todo-api",
	Short:         "Todo list REST API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		slog.SetDefault(config.NewLogger(cfg, os.Stderr))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, dbConfigCmd)
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openPool connects to Postgres for the commands that need a real database
// regardless of STORE_BACKEND.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return pool, nil
}

// openStore returns the configured store and a function releasing it.
func openStore(ctx context.Context) (store.TodoStore, func(), error) {
	if cfg.StoreBackend == config.BackendMemory {
		slog.Info("using in-memory store")
		return store.NewMemory(), func() {}, nil
	}

	pool, err := openPool(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		slog.Warn("schema sync failed", "err", err)
	}
	return store.NewPostgres(pool), pool.Close, nil
}
