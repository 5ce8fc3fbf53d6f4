package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/userdeck/userdeck/internal/access"
	"github.com/userdeck/userdeck/internal/account"
	"github.com/userdeck/userdeck/internal/tui"
	"github.com/userdeck/userdeck/internal/ux"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requires(access.RequireAdmin); err != nil {
			return err
		}

		dir := app.directory()
		if err := dir.Load(cmd.Context()); err != nil {
			return err
		}

		accounts := dir.Accounts()
		if flagFormat == "text" {
			fmt.Println(ux.AccountTable{Accounts: accounts, NoColor: flagNoColor})
			return nil
		}
		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(accounts)
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAccountID(args[0])
		if err != nil {
			return err
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requires(access.RequireAdmin); err != nil {
			return err
		}

		dir := app.directory()
		if err := dir.Load(cmd.Context()); err != nil {
			return err
		}
		acct, ok := dir.Find(id)
		if !ok {
			return fmt.Errorf("no user with id %d", id)
		}

		if flagFormat == "text" {
			fmt.Println(ux.AccountDetail{Account: acct, NoColor: flagNoColor})
			return nil
		}
		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(acct)
	},
}

var usersEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a user account",
	Long: `Edit a user account.

The record is fetched first and the given flags are applied on top of it,
so unset fields keep their current values. After a confirmed save the
listing is reloaded from the server.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAccountID(args[0])
		if err != nil {
			return err
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requires(access.RequireAdmin); err != nil {
			return err
		}

		dir := app.directory()
		if err := dir.Load(cmd.Context()); err != nil {
			return err
		}
		acct, ok := dir.Find(id)
		if !ok {
			return fmt.Errorf("no user with id %d", id)
		}

		draft := account.DraftFrom(acct)
		if anyDraftFlagSet(cmd) {
			applyDraftFlags(cmd, &draft)
		} else {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("no fields given; pass --email, --display-name, etc., or run interactively")
			}
			if draft, err = tui.EditDraft(draft); err != nil {
				return err
			}
		}

		if err := dir.Update(cmd.Context(), id, draft); err != nil {
			return err
		}
		fmt.Printf("User %d updated.\n", id)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Long: `Delete a user account.

The account stays in the listing until the server confirms the deletion;
a failed delete leaves it in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAccountID(args[0])
		if err != nil {
			return err
		}
		skipConfirm, _ := cmd.Flags().GetBool("yes")

		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requires(access.RequireAdmin); err != nil {
			return err
		}

		dir := app.directory()
		if err := dir.Load(cmd.Context()); err != nil {
			return err
		}
		acct, ok := dir.Find(id)
		if !ok {
			return fmt.Errorf("no user with id %d", id)
		}

		if !skipConfirm {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("refusing to delete without --yes in a non-interactive session")
			}
			confirmed, err := tui.PromptConfirm(
				fmt.Sprintf("Delete %s (id %d)?", acct.Email, acct.ID), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := dir.Remove(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("User %d deleted.\n", id)
		return nil
	},
}

var usersBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse user accounts interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requires(access.RequireAdmin); err != nil {
			return err
		}
		if !tui.IsInteractive() {
			return fmt.Errorf("'users browse' needs an interactive terminal; use 'users list' instead")
		}

		dir := app.directory()
		if err := dir.Load(cmd.Context()); err != nil {
			return err
		}
		return tui.RunBrowser(cmd.Context(), dir)
	},
}

func parseAccountID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}

func init() {
	addDraftFlags(usersEditCmd)
	usersDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersShowCmd)
	usersCmd.AddCommand(usersEditCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersBrowseCmd)

	rootCmd.AddCommand(usersCmd)
}
