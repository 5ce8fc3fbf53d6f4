package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/userdeck/userdeck/internal/account"
)

// EditDraft runs the profile edit form over a draft and returns the edited
// copy. The caller validates and submits; the form only collects input.
func EditDraft(draft account.Draft) (account.Draft, error) {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Display name").
			Value(&draft.DisplayName),
		huh.NewInput().
			Title("First name").
			Value(&draft.FirstName),
		huh.NewInput().
			Title("Last name").
			Value(&draft.LastName),
		huh.NewInput().
			Title("Email").
			Value(&draft.Email),
		huh.NewInput().
			Title("Birth date (YYYY-MM-DD)").
			Placeholder("1990-06-15").
			Value(&draft.BirthDate),
		huh.NewInput().
			Title("Phone").
			Value(&draft.Phone),
		huh.NewInput().
			Title("Address").
			Value(&draft.Address),
	))

	if err := form.Run(); err != nil {
		return account.Draft{}, fmt.Errorf("edit form failed: %w", err)
	}
	return draft, nil
}
