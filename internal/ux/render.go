package ux

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/userdeck/userdeck/internal/account"
	"github.com/userdeck/userdeck/internal/apierr"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	fieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// AccountTable renders accounts as an aligned text table.
type AccountTable struct {
	Accounts []account.Account
	NoColor  bool
}

// String implements fmt.Stringer for the text formatter.
func (t AccountTable) String() string {
	if len(t.Accounts) == 0 {
		return "No users found"
	}

	style := func(s lipgloss.Style, v string) string {
		if t.NoColor {
			return v
		}
		return s.Render(v)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", style(headerStyle,
		fmt.Sprintf("%-6s %-30s %-24s %-8s", "ID", "EMAIL", "NAME", "ROLE")))
	for _, a := range t.Accounts {
		fmt.Fprintf(&b, "%-6d %-30s %-24s %-8s\n", a.ID, a.Email, a.DisplayName, a.Role)
	}
	b.WriteString(style(mutedStyle, fmt.Sprintf("%d user(s)", len(t.Accounts))))
	return b.String()
}

// AccountDetail renders one account as a field list.
type AccountDetail struct {
	Account account.Account
	NoColor bool
}

func (d AccountDetail) String() string {
	a := d.Account
	lines := []struct{ label, value string }{
		{"ID", fmt.Sprintf("%d", a.ID)},
		{"Email", a.Email},
		{"Name", a.DisplayName},
		{"Role", a.Role},
	}
	if !a.CreatedAt.IsZero() {
		lines = append(lines, struct{ label, value string }{
			"Created", a.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-10s %s", l.label+":", l.value)
	}
	return b.String()
}

// RenderError turns a normalized error into the message a user should see.
// Validation errors list every rejected field; transient kinds carry a hint
// that the last good state is still on screen.
func RenderError(err error, noColor bool) string {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	style := func(s lipgloss.Style, v string) string {
		if noColor {
			return v
		}
		return s.Render(v)
	}

	var b strings.Builder
	b.WriteString(style(errorStyle, "Error: ") + apiErr.Message)

	switch apiErr.Kind {
	case apierr.KindValidation:
		if len(apiErr.Fields) > 1 {
			for field, msgs := range apiErr.Fields {
				for _, msg := range msgs {
					fmt.Fprintf(&b, "\n  %s %s", style(fieldStyle, field+":"), msg)
				}
			}
		}
	case apierr.KindNetwork:
		b.WriteString("\n" + style(mutedStyle, "Check the API URL with 'userdeck config show'."))
	case apierr.KindServer:
		b.WriteString("\n" + style(mutedStyle, "This is not something you can fix locally; try again later."))
	}
	return b.String()
}
