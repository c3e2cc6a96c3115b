package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game result and progress commands",
	}

	cmd.AddCommand(newGameSubmitLevelCmd())
	cmd.AddCommand(newGameSubmitArcadeCmd())
	cmd.AddCommand(newGameSubmitMultiplayerCmd())
	cmd.AddCommand(newGameProgressCmd())
	cmd.AddCommand(newGameSessionsCmd())

	return cmd
}

func newGameSubmitLevelCmd() *cobra.Command {
	var theme string
	var completed bool

	cmd := &cobra.Command{
		Use:   "submit-level <user-id> <level> <score> <time> <moves>",
		Short: "Submit an adventure level result",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid level: %w", err)
			}
			score, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid score: %w", err)
			}
			timeTaken, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid time: %w", err)
			}
			moves, err := strconv.Atoi(args[4])
			if err != nil {
				return fmt.Errorf("invalid moves: %w", err)
			}

			req := map[string]any{
				"userId":      args[0],
				"levelNumber": level,
				"score":       score,
				"timeTaken":   timeTaken,
				"moves":       moves,
				"theme":       theme,
				"completed":   completed,
			}
			var result LevelResult

			if err := client.Post("/game/level-result", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Tile theme used")
	cmd.Flags().BoolVar(&completed, "completed", true, "Whether the level was completed")

	return cmd
}

func newGameSubmitArcadeCmd() *cobra.Command {
	var theme, gridSize string
	var bonus, stars int

	cmd := &cobra.Command{
		Use:   "submit-arcade <user-id> <score> <time> <moves>",
		Short: "Submit an arcade run result",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid score: %w", err)
			}
			timeTaken, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid time: %w", err)
			}
			moves, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid moves: %w", err)
			}

			req := map[string]any{
				"userId":   args[0],
				"score":    score,
				"time":     timeTaken,
				"moves":    moves,
				"bonus":    bonus,
				"stars":    stars,
				"theme":    theme,
				"gridSize": gridSize,
			}
			var result ArcadeResult

			if err := client.Post("/game/arcade-result", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Tile theme used")
	cmd.Flags().StringVar(&gridSize, "grid-size", "", "Grid size label")
	cmd.Flags().IntVar(&bonus, "bonus", 0, "Bonus points")
	cmd.Flags().IntVar(&stars, "stars", 0, "Stars earned")

	return cmd
}

func newGameSubmitMultiplayerCmd() *cobra.Command {
	var theme string
	var timeTaken, totalMoves int

	cmd := &cobra.Command{
		Use:   "submit-multiplayer <user-id> <player1-score> <player2-score>",
		Short: "Submit a local two-player result",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p1, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid player1 score: %w", err)
			}
			p2, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid player2 score: %w", err)
			}

			req := map[string]any{
				"userId":       args[0],
				"theme":        theme,
				"player1Score": p1,
				"player2Score": p2,
				"timeTaken":    timeTaken,
				"totalMoves":   totalMoves,
			}
			var result MultiplayerResult

			if err := client.Post("/game/multiplayer-result", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "Classic", "Tile theme used")
	cmd.Flags().IntVar(&timeTaken, "time", 0, "Game duration in seconds")
	cmd.Flags().IntVar(&totalMoves, "moves", 0, "Total moves across both players")

	return cmd
}

func newGameProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <user-id>",
		Short: "Get a user's adventure progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Progress

			if err := client.Get(fmt.Sprintf("/game/progress/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSessionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions <user-id>",
		Short: "List a user's recent arcade sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []ArcadeSession

			path := fmt.Sprintf("/game/sessions/%s?limit=%d", args[0], limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum sessions to return")

	return cmd
}
