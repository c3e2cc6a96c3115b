package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAchievementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Achievement commands",
	}

	cmd.AddCommand(newAchievementListCmd())
	cmd.AddCommand(newAchievementStatsCmd())
	cmd.AddCommand(newAchievementReportCmd())
	cmd.AddCommand(newAchievementUnlockCmd())

	return cmd
}

func newAchievementListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a user's achievements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Achievement

			if err := client.Get(fmt.Sprintf("/achievements/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAchievementStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <user-id>",
		Short: "Show a user's achievement stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AchievementStats

			if err := client.Get(fmt.Sprintf("/achievements/%s/stats", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAchievementReportCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "report <user-id> <type> <name> <progress>",
		Short: "Report achievement progress",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid progress: %w", err)
			}

			req := map[string]any{
				"userId":          args[0],
				"achievementType": args[1],
				"name":            args[2],
				"description":     description,
				"progress":        progress,
			}
			var result map[string]any

			if err := client.Post("/achievements/progress", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Achievement description")

	return cmd
}

func newAchievementUnlockCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "unlock <user-id> <type> <name>",
		Short: "Unlock an achievement outright",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"userId":          args[0],
				"achievementType": args[1],
				"name":            args[2],
				"description":     description,
			}
			var result map[string]any

			if err := client.Post("/achievements/unlock", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Achievement description")

	return cmd
}
