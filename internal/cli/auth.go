package cli

import (
	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account commands",
	}

	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthMeCmd())

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <email> <username> <password>",
		Short: "Register a new account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"email":    args[0],
				"username": args[1],
				"password": args[2],
			}
			var result AuthResult

			if err := client.Post("/auth/register", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAuthLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in to an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"email":    args[0],
				"password": args[1],
			}
			var result AuthResult

			if err := client.Post("/auth/login", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/auth/logout", nil, nil); err != nil {
				return err
			}

			if err := cfg.SaveToken(""); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newAuthMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if err := client.Get("/auth/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
