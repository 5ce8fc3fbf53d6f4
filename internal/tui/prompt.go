// Package tui holds the interactive pieces of the client: huh prompts for
// the forms and a bubbletea browser for the admin directory.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// PromptString asks for a single line of input.
func PromptString(title, placeholder string, required bool) (string, error) {
	var value string

	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	if required && value == "" {
		return "", fmt.Errorf("value is required")
	}
	return value, nil
}

// PromptPassword asks for a secret without echoing it.
func PromptPassword(title string) (string, error) {
	var value string

	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	if value == "" {
		return "", fmt.Errorf("value is required")
	}
	return value, nil
}

// PromptConfirm asks a yes/no question.
func PromptConfirm(title string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(title).
		Value(&confirmed)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt reports whether interactive prompts may be shown. Prompts
// are suppressed in CI and when stdin is piped.
func ShouldPrompt() bool {
	for _, envVar := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(envVar) != "" {
			return false
		}
	}
	return IsInteractive()
}
