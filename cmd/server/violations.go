package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JeanGrijp/alerting-system/internal/core/services"
)

// newViolationsCmd imprime o log de violações como JSON, no mesmo formato de GET /api/metrics.
func newViolationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "violations",
		Short: "Print the recorded violations as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			violations, closeStorage, err := initViolationLog(cmd.Context(), cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to init storage: %w", err)
			}
			defer closeStorage()

			metrics, err := services.NewMetricsService(violations)
			if err != nil {
				return err
			}
			records, err := metrics.GetAll(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}
}
