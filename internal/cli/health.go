package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the tile match server is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			var result HealthResult
			if err := client.Get("/health", &result); err != nil {
				return fmt.Errorf("server %s unreachable: %w", cfg.ServerURL, err)
			}
			result.Server = cfg.ServerURL
			result.Latency = time.Since(start).Round(time.Millisecond).String()

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
