package ui

import (
	"context"

	"github.com/Mohsinsiddi/counterdapp/internal/dapp"
	tea "github.com/charmbracelet/bubbletea"
)

func connectCmd(ctx context.Context, app *dapp.App) tea.Cmd {
	return func() tea.Msg {
		return connectedMsg{err: app.Connect(ctx)}
	}
}

func refreshCmd(ctx context.Context, app *dapp.App) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: app.Refresh(ctx)}
	}
}

func incrementCmd(ctx context.Context, app *dapp.App, message string) tea.Cmd {
	return func() tea.Msg {
		return txDoneMsg{action: "increment", err: app.Increment(ctx, message)}
	}
}

func resetCmd(ctx context.Context, app *dapp.App) tea.Cmd {
	return func() tea.Msg {
		return txDoneMsg{action: "reset", err: app.Reset(ctx, true)}
	}
}

func openURLCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := open(url); err != nil {
			return noticeMsg{text: "Could not open browser: " + err.Error(), err: true}
		}
		return noticeMsg{text: "Opening in browser…"}
	}
}

func copyCmd(copyFn func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return noticeMsg{text: "Copy failed: " + err.Error(), err: true}
		}
		return noticeMsg{text: "Copied: " + TruncateAddr(text)}
	}
}
