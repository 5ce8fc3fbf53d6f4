package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/userdeck/userdeck/internal/access"
	"github.com/userdeck/userdeck/internal/session"
	"github.com/userdeck/userdeck/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication and the local session",
	Long: `Manage authentication and the local session.

The session (credential and role) is stored under the userdeck home
directory and survives restarts until you log out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	Example: `  userdeck auth login --email user@example.com
  userdeck auth login --email user@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--password is required")
			}
			var err error
			password, err = tui.PromptPassword("Password")
			if err != nil {
				return err
			}
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		result, err := app.gateway.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", result.Account.Email, result.Account.Role.Name)
		if result.Account.Role.Name == string(session.RoleAdmin) {
			fmt.Println("Admin commands are available under 'userdeck users'.")
		}
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if !app.store.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		// The server call is best effort; the local session is cleared
		// regardless.
		if err := app.gateway.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		sess := app.store.Get()
		if !sess.Authenticated() {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'userdeck auth login' to authenticate.")
			return nil
		}

		me, err := app.gateway.Me(cmd.Context())
		if err != nil {
			fmt.Println("Session present but the credential was rejected.")
			fmt.Println("Use 'userdeck auth login' to re-authenticate.")
			return nil
		}

		fmt.Printf("Logged in as %s (%s)\n", me.Email, sess.Role)
		fmt.Printf("Session file: %s\n", app.store.Path())
		if expiry, ok := app.gateway.TokenExpiry(); ok {
			fmt.Printf("Token expires: %s\n", expiry.Format(time.RFC1123))
			if app.gateway.TokenExpiresWithin(10 * time.Minute) {
				fmt.Println("Token expires soon; run 'userdeck auth refresh'.")
			}
		}
		return nil
	},
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the current credential for a fresh one",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requires(access.RequireAuthenticated); err != nil {
			return err
		}

		if err := app.gateway.Refresh(cmd.Context()); err != nil {
			// The old session is still in place; the caller decides what
			// to do next.
			return err
		}
		fmt.Println("Token refreshed.")
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("email", "", "email address")
	authLoginCmd.Flags().String("password", "", "password (prompted when omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRefreshCmd)

	rootCmd.AddCommand(authCmd)
}
