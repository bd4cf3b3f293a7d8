package ui

import (
	"errors"
	"fmt"

	"github.com/Mohsinsiddi/counterdapp/internal/wallet"
	"github.com/charmbracelet/huh"
)

// Confirm prompts the user with a yes/no question. Returns true for yes.
// An aborted prompt (ctrl+c) counts as no.
func Confirm(prompt string) bool {
	return confirm(prompt, "")
}

// ConfirmDanger is like Confirm with a warning line, for destructive actions.
func ConfirmDanger(prompt string) bool {
	return confirm("⚠ "+prompt, "This cannot be undone.")
}

func confirm(title, desc string) bool {
	var ok bool
	c := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if desc != "" {
		c = c.Description(desc)
	}
	if err := huh.NewForm(huh.NewGroup(c)).WithTheme(huh.ThemeCatppuccin()).Run(); err != nil {
		return false
	}
	return ok
}

// PromptSecret reads a hidden value, e.g. a private key.
func PromptSecret(title string, validate func(string) error) (string, error) {
	var v string
	in := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&v)
	if validate != nil {
		in = in.Validate(validate)
	}
	err := huh.NewForm(huh.NewGroup(in)).WithTheme(huh.ThemeCatppuccin()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", fmt.Errorf("aborted")
	}
	return v, err
}

// ConfirmRequest shows a wallet prompt on the terminal.
func ConfirmRequest(req wallet.Request) bool {
	title, body := promptText(req)
	return confirm(title, body)
}
