package cli

import (
	"github.com/spf13/cobra"
	"github.com/yigit/registrar/internal/pkg/logger"
	"github.com/yigit/registrar/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect, migrate and serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := server.NewServer(cmd.Context(), configPath)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to initialize server")
			return err
		}

		// blocks until SIGINT/SIGTERM
		if err := srv.Run(); err != nil {
			logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
			return err
		}

		logger.Info().Msg("Application finished gracefully.")
		return nil
	},
}
