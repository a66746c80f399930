package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"todo-api/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the Todos table if it is missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.Migrate(cmd.Context(), pool); err != nil {
			return err
		}
		slog.Info("schema up to date")
		return nil
	},
}
