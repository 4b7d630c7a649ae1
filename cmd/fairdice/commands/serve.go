package commands

import (
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwetzel/fairdice/internal/api"
	"github.com/mwetzel/fairdice/internal/config"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the commitment verification HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := log.New(os.Stdout, "[serve] ", log.LstdFlags)
			server := api.NewServer(cfg.RequestTimeout)

			logger.Printf("listening addr=%s timeout=%s", cfg.ListenAddr, cfg.RequestTimeout)
			return http.ListenAndServe(cfg.ListenAddr, server.Routes())
		},
	}
}
