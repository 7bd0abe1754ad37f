package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phrazzld/degen-journal/internal/config"
	"github.com/phrazzld/degen-journal/internal/platform/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status|version|reset]",
	Short: "Run database migrations for the postgres store",
	Long: `Run goose migrations against storage.database_url. The command
defaults to "up". Only the postgres storage driver has a schema.`,
	Args: cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{
		postgres.MigrateUp,
		postgres.MigrateDown,
		postgres.MigrateStatus,
		postgres.MigrateVersion,
		postgres.MigrateReset,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Storage.Driver != config.DriverPostgres {
			return fmt.Errorf("migrations need the %q storage driver, configured driver is %q",
				config.DriverPostgres, cfg.Storage.Driver)
		}

		command := postgres.MigrateUp
		if len(args) == 1 {
			command = args[0]
		}

		db, err := postgres.Open(cmd.Context(), cfg.Storage.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		return postgres.Migrate(cmd.Context(), db, command, log)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
