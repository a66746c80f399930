package cmd

import (
	"github.com/spf13/cobra"

	"todo-api/db"
	"todo-api/store"
)

var seedUndo bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo todos, or remove all todos with --undo",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if seedUndo {
			return db.Unseed(ctx, pool)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}
		return db.Seed(ctx, store.NewPostgres(pool))
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedUndo, "undo", false, "delete every todo instead of seeding")
}
