package main

import (
	"github.com/spf13/cobra"

	"github.com/dharmasatrya/aviasearch/internal/app"
	"github.com/dharmasatrya/aviasearch/internal/config"
)

func serveCMD() *cobra.Command {
	var cfgPath string
	var port string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			return app.Run(cfg)
		},
	}
	serve.Flags().StringVar(&port, "port", "", "listen port (overrides config)")
	serve.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config.*)")

	return serve
}
