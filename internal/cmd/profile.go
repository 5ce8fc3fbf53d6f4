package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/userdeck/userdeck/internal/access"
	"github.com/userdeck/userdeck/internal/account"
	"github.com/userdeck/userdeck/internal/tui"
	"github.com/userdeck/userdeck/internal/ux"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your own profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requires(access.RequireAuthenticated); err != nil {
			return err
		}

		editor := app.profileEditor()
		if _, err := editor.Open(cmd.Context()); err != nil {
			return err
		}
		current, _ := editor.Current()

		f, err := formatter()
		if err != nil {
			return err
		}
		if flagFormat == "text" {
			detail := ux.AccountDetail{Account: current.Account, NoColor: flagNoColor}.String()
			if current.BirthDate != "" {
				detail += fmt.Sprintf("\n%-10s %s", "Born:", current.BirthDate)
			}
			if current.Phone != "" {
				detail += fmt.Sprintf("\n%-10s %s", "Phone:", current.Phone)
			}
			if current.Address != "" {
				detail += fmt.Sprintf("\n%-10s %s", "Address:", current.Address)
			}
			fmt.Println(detail)
			return nil
		}
		return f.Format(current)
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile",
	Long: `Edit your profile.

Without flags an interactive form opens, seeded with the current values.
Fields changed via flags are applied directly; nothing is sent to the
server until the draft validates locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.requires(access.RequireAuthenticated); err != nil {
			return err
		}

		editor := app.profileEditor()
		draft, err := editor.Open(cmd.Context())
		if err != nil {
			return err
		}

		if !anyDraftFlagSet(cmd) {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("no fields given; pass --email, --display-name, etc., or run interactively")
			}
			if draft, err = tui.EditDraft(draft); err != nil {
				return err
			}
		} else {
			applyDraftFlags(cmd, &draft)
		}

		if err := editor.Save(cmd.Context(), draft); err != nil {
			return err
		}
		fmt.Println("Profile saved.")
		return nil
	},
}

func anyDraftFlagSet(cmd *cobra.Command) bool {
	for _, name := range []string{"email", "first-name", "last-name", "display-name", "birth-date", "phone", "address"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func applyDraftFlags(cmd *cobra.Command, draft *account.Draft) {
	set := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	set("email", &draft.Email)
	set("first-name", &draft.FirstName)
	set("last-name", &draft.LastName)
	set("display-name", &draft.DisplayName)
	set("birth-date", &draft.BirthDate)
	set("phone", &draft.Phone)
	set("address", &draft.Address)
}

func addDraftFlags(cmd *cobra.Command) {
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	cmd.Flags().String("display-name", "", "display name")
	cmd.Flags().String("birth-date", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("address", "", "postal address")
}

func init() {
	addDraftFlags(profileEditCmd)

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileEditCmd)

	rootCmd.AddCommand(profileCmd)
}
