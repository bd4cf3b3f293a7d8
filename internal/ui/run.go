package ui

import (
	"context"

	"github.com/Mohsinsiddi/counterdapp/internal/dapp"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
)

// Run starts the full-screen view and blocks until the user quits. Wallet
// prompts go through approver; account changes reach the view as messages.
func Run(ctx context.Context, app *dapp.App, approver *Approver, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(ctx, app, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	approver.Attach(p.Send)
	app.OnAccountChange(func(a *common.Address) {
		p.Send(accountsChangedMsg{account: a})
	})
	defer func() {
		approver.Attach(nil)
		app.OnAccountChange(nil)
	}()

	_, err := p.Run()
	return err
}
