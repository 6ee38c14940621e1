package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/JeanGrijp/alerting-system/internal/config"
)

var (
	envFile    string
	configFile string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "alerting-system",
		Short:        "HTTP gatekeeper with per-IP fixed-window throttling and e-mail alerts",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a .env file (ignored when missing)")
	root.PersistentFlags().StringVar(&configFile, "config", "", "optional YAML config file")

	root.AddCommand(newViolationsCmd())
	return root
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{EnvFile: envFile, ConfigFile: configFile})
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return config.Config{}, err
	}
	return cfg, nil
}
