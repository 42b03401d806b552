package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yigit/registrar/internal/bootstrap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		database, err := bootstrap.ConnectDatabase(cmd.Context(), cfg, lgr)
		if err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		defer database.Close()

		applied, err := bootstrap.RunMigrations(cmd.Context(), database, lgr)
		for _, v := range applied {
			printf(color.New(color.FgGreen), "✅ applied %s\n", v)
		}
		if err != nil {
			return err
		}

		if len(applied) == 0 {
			printf(color.New(color.FgYellow), "Schema is up to date, nothing to apply\n")
			return nil
		}
		printf(color.New(color.FgGreen, color.Bold), "🎉 %d migration(s) applied\n", len(applied))
		return nil
	},
}
