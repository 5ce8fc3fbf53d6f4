package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/userdeck/userdeck/internal/account"
	"github.com/userdeck/userdeck/internal/directory"
	"github.com/userdeck/userdeck/internal/ux"
)

// browseView is which screen the browser is showing.
type browseView int

const (
	viewTable browseView = iota
	viewDetail
	viewConfirmDelete
)

type loadedMsg struct {
	err error
}

type removedMsg struct {
	id  int
	err error
}

// BrowseModel is the interactive admin directory: a navigable account
// table with reload, detail, and delete.
type BrowseModel struct {
	dir   *directory.Directory
	ctx   context.Context
	table table.Model

	view     browseView
	selected account.Account
	status   string
	quitting bool

	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
	helpStyle   lipgloss.Style
}

// NewBrowseModel builds the browser over an already-loaded directory.
func NewBrowseModel(ctx context.Context, dir *directory.Directory) BrowseModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Email", Width: 30},
		{Title: "Name", Width: 24},
		{Title: "Role", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(accountRows(dir.Accounts())),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("63"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return BrowseModel{
		dir:         dir,
		ctx:         ctx,
		table:       t,
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		helpStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}

func accountRows(accounts []account.Account) []table.Row {
	rows := make([]table.Row, len(accounts))
	for i, a := range accounts {
		rows[i] = table.Row{strconv.Itoa(a.ID), a.Email, a.DisplayName, a.Role}
	}
	return rows
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case loadedMsg:
		if msg.err != nil {
			// Keep the last good rows on screen; just report the failure.
			m.status = ux.RenderError(msg.err, true)
			return m, nil
		}
		m.table.SetRows(accountRows(m.dir.Accounts()))
		m.status = "Reloaded"
		return m, nil

	case removedMsg:
		if msg.err != nil {
			m.status = ux.RenderError(msg.err, true)
			return m, nil
		}
		m.table.SetRows(accountRows(m.dir.Accounts()))
		m.status = fmt.Sprintf("User %d deleted", msg.id)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewDetail:
		switch msg.String() {
		case "esc", "q", "enter":
			m.view = viewTable
		}
		return m, nil

	case viewConfirmDelete:
		switch msg.String() {
		case "y":
			m.view = viewTable
			id := m.selected.ID
			return m, func() tea.Msg {
				return removedMsg{id: id, err: m.dir.Remove(m.ctx, id)}
			}
		case "n", "esc":
			m.view = viewTable
			m.status = "Delete cancelled"
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if a, ok := m.selectedAccount(); ok {
			m.selected = a
			m.view = viewDetail
		}
		return m, nil

	case "d":
		if a, ok := m.selectedAccount(); ok {
			m.selected = a
			m.view = viewConfirmDelete
		}
		return m, nil

	case "r":
		return m, func() tea.Msg {
			return loadedMsg{err: m.dir.Load(m.ctx)}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowseModel) selectedAccount() (account.Account, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return account.Account{}, false
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return account.Account{}, false
	}
	return m.dir.Find(id)
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewDetail:
		detail := ux.AccountDetail{Account: m.selected, NoColor: true}
		return m.titleStyle.Render("User details") + "\n" +
			detail.String() + "\n" +
			m.helpStyle.Render("esc: back")

	case viewConfirmDelete:
		return m.titleStyle.Render("Delete user") + "\n" +
			fmt.Sprintf("Delete %s (%d)? This cannot be undone.", m.selected.Email, m.selected.ID) + "\n" +
			m.helpStyle.Render("y: delete  n: cancel")
	}

	view := m.titleStyle.Render("Users") + "\n" + m.table.View()
	if m.status != "" {
		view += "\n" + m.statusStyle.Render(m.status)
	}
	view += "\n" + m.helpStyle.Render("enter: details  d: delete  r: reload  q: quit")
	return view
}

// RunBrowser starts the interactive directory browser.
func RunBrowser(ctx context.Context, dir *directory.Directory) error {
	_, err := tea.NewProgram(NewBrowseModel(ctx, dir)).Run()
	return err
}
