package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// RequestKind distinguishes the prompts a wallet shows the user.
type RequestKind int

const (
	// RequestConnect asks to expose an account to the application.
	RequestConnect RequestKind = iota
	// RequestSign asks to sign and broadcast a transaction.
	RequestSign
)

func (k RequestKind) String() string {
	switch k {
	case RequestConnect:
		return "connect"
	case RequestSign:
		return "sign"
	}
	return "unknown"
}

// Request is one permission prompt.
type Request struct {
	Kind    RequestKind
	Account common.Address
	To      common.Address // RequestSign only
	Summary string         // e.g. `increment("gm")`
}

// Approver shows a permission prompt and returns nil when the user accepts.
// Any error is treated as a rejection.
type Approver interface {
	Approve(ctx context.Context, req Request) error
}

// ApproverFunc adapts a function to Approver.
type ApproverFunc func(ctx context.Context, req Request) error

func (f ApproverFunc) Approve(ctx context.Context, req Request) error { return f(ctx, req) }

// AutoApprove accepts every request. Used for --yes and tests.
var AutoApprove Approver = ApproverFunc(func(context.Context, Request) error { return nil })

// DenyAll rejects every request.
var DenyAll Approver = ApproverFunc(func(context.Context, Request) error { return ErrUserRejected })
