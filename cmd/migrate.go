package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"recipeapp.com/internal/auth"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and seed the RBAC policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := auth.InitCasbin(db.DB); err != nil {
				return err
			}
			slog.Info("Migration complete")
			return nil
		},
	}
}
