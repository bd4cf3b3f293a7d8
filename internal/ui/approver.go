package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/Mohsinsiddi/counterdapp/internal/wallet"
	tea "github.com/charmbracelet/bubbletea"
)

// approvalMsg asks the view to show a wallet prompt. The answer goes to reply.
type approvalMsg struct {
	req   wallet.Request
	reply chan error
}

// Approver shows wallet prompts as a dialog inside the running program.
// Approve blocks the calling command until the user answers.
type Approver struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

var _ wallet.Approver = (*Approver)(nil)

// NewApprover returns an approver with no program attached yet.
func NewApprover() *Approver {
	return &Approver{}
}

// Attach routes prompts to a program, usually (*tea.Program).Send.
func (a *Approver) Attach(send func(tea.Msg)) {
	a.mu.Lock()
	a.send = send
	a.mu.Unlock()
}

func (a *Approver) Approve(ctx context.Context, req wallet.Request) error {
	a.mu.Lock()
	send := a.send
	a.mu.Unlock()
	if send == nil {
		return fmt.Errorf("%w: no prompt available", wallet.ErrUserRejected)
	}

	reply := make(chan error, 1)
	send(approvalMsg{req: req, reply: reply})
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func promptText(req wallet.Request) (title, body string) {
	switch req.Kind {
	case wallet.RequestConnect:
		return "Connect wallet", fmt.Sprintf("Allow counterdapp to see account %s?", req.Account.Hex())
	default:
		return "Sign transaction", fmt.Sprintf("%s\nfrom %s\nto   %s", req.Summary, req.Account.Hex(), req.To.Hex())
	}
}
