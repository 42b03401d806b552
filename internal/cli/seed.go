package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yigit/registrar/internal/bootstrap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo faculty, course and student into an empty registrar",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		database, err := bootstrap.SetupDatabase(cmd.Context(), cfg, lgr)
		if err != nil {
			return err
		}
		defer database.Close()

		res, err := bootstrap.SeedDemoData(cmd.Context(), bootstrap.BuildDependencies(database, lgr))
		if err != nil {
			return err
		}

		if res.Skipped {
			printf(color.New(color.FgYellow), "Registrar already has faculty, demo data not inserted\n")
			return nil
		}
		printf(color.New(color.FgGreen, color.Bold), "✅ demo data created: faculty %d, course %d, student %d\n",
			res.FacultyID, res.CourseID, res.StudentID)
		return nil
	},
}
