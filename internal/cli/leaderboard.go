package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var mode string
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the global leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard

			path := fmt.Sprintf("/leaderboard?mode=%s&limit=%d", strings.ToUpper(mode), limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "arcade", "Leaderboard mode: arcade, adventure")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum entries to return")

	return cmd
}
