package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yigit/registrar/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "University registrar API for faculty, courses and students",
	Long: `registrar serves the faculty, course and student JSON API.

Examples:

  registrar serve
  registrar migrate --config configs/config.yaml
  registrar seed
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// bare "registrar" behaves like "registrar serve"
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func printf(c *color.Color, format string, args ...interface{}) {
	c.Fprintf(rootCmd.OutOrStdout(), format, args...)
}
