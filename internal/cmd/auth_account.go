package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/userdeck/userdeck/internal/access"
	"github.com/userdeck/userdeck/internal/auth"
	"github.com/userdeck/userdeck/internal/tui"
)

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long: `Register a new account.

Registration does not log you in; run 'userdeck auth login' afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

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

		env, err := app.gateway.Register(cmd.Context(), auth.RegisterPayload{
			FirstName:            firstName,
			LastName:             lastName,
			Email:                email,
			Password:             password,
			PasswordConfirmation: password,
		})
		if err != nil {
			return err
		}

		if env.Message != "" {
			fmt.Println(env.Message)
		} else {
			fmt.Println("Registered. Use 'userdeck auth login' to sign in.")
		}
		return nil
	},
}

var authChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the password of the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requires(access.RequireAuthenticated); err != nil {
			return err
		}

		current, _ := cmd.Flags().GetString("current")
		next, _ := cmd.Flags().GetString("new")

		if current == "" || next == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--current and --new are required")
			}
			if current == "" {
				if current, err = tui.PromptPassword("Current password"); err != nil {
					return err
				}
			}
			if next == "" {
				if next, err = tui.PromptPassword("New password"); err != nil {
					return err
				}
			}
		}

		if err := app.gateway.ChangePassword(cmd.Context(), current, next); err != nil {
			return err
		}
		fmt.Println("Password changed.")
		return nil
	},
}

var authForgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset email",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			return fmt.Errorf("--email is required")
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.gateway.ForgotPassword(cmd.Context(), email); err != nil {
			return err
		}
		fmt.Println("If the address exists, a reset email is on its way.")
		return nil
	},
}

var authResetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password with a reset token",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		password, _ := cmd.Flags().GetString("password")

		if token == "" {
			return fmt.Errorf("--token is required")
		}
		if password == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--password is required")
			}
			var err error
			password, err = tui.PromptPassword("New password")
			if err != nil {
				return err
			}
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.gateway.ResetPassword(cmd.Context(), token, password); err != nil {
			return err
		}
		fmt.Println("Password reset. Use 'userdeck auth login' to sign in.")
		return nil
	},
}

func init() {
	authRegisterCmd.Flags().String("email", "", "email address")
	authRegisterCmd.Flags().String("password", "", "password (prompted when omitted)")
	authRegisterCmd.Flags().String("first-name", "", "first name")
	authRegisterCmd.Flags().String("last-name", "", "last name")

	authChangePasswordCmd.Flags().String("current", "", "current password")
	authChangePasswordCmd.Flags().String("new", "", "new password")

	authForgotPasswordCmd.Flags().String("email", "", "email address")

	authResetPasswordCmd.Flags().String("token", "", "reset token from the email")
	authResetPasswordCmd.Flags().String("password", "", "new password")

	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authChangePasswordCmd)
	authCmd.AddCommand(authForgotPasswordCmd)
	authCmd.AddCommand(authResetPasswordCmd)
}
