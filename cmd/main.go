package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"recipeapp.com/internal/config"
	"recipeapp.com/internal/infra"
	"recipeapp.com/internal/logger"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "recipe-api",
		Short:         "User accounts and recipes over a REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default: ./config.yaml or ./config/config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newCreateSuperuserCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap loads config, installs the logger and opens the migrated database.
func bootstrap() (*config.Config, *infra.DatabaseClient, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Setup(cfg.Log)

	db, err := infra.NewDatabaseClient(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return cfg, db, nil
}
