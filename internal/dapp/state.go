package dapp

import (
	"math/big"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TxStatus is the state of the single state-mutating flow.
type TxStatus int

const (
	TxIdle TxStatus = iota
	TxPending
	// TxFailed marks the last flow as failed. It does not block the next one.
	TxFailed
)

func (s TxStatus) String() string {
	switch s {
	case TxIdle:
		return "idle"
	case TxPending:
		return "pending"
	case TxFailed:
		return "failed"
	}
	return "unknown"
}

// Entry is one history record.
type Entry struct {
	Message   string
	Sender    common.Address
	Timestamp time.Time
}

// State is a snapshot of everything the view renders.
type State struct {
	Account *common.Address // nil when disconnected
	Count   *big.Int        // nil until loaded
	History []Entry         // newest first

	Status TxStatus
	LastTx *common.Hash // last confirmed or failed transaction

	Loading        bool
	LoadingHistory bool

	Input string
}

// Connected reports whether an account is active.
func (s State) Connected() bool {
	return s.Account != nil
}

// Pending reports whether a mutating flow is in progress.
func (s State) Pending() bool {
	return s.Status == TxPending
}

func (s State) clone() State {
	out := s
	if s.Account != nil {
		a := *s.Account
		out.Account = &a
	}
	if s.Count != nil {
		out.Count = new(big.Int).Set(s.Count)
	}
	if s.LastTx != nil {
		h := *s.LastTx
		out.LastTx = &h
	}
	out.History = slices.Clone(s.History)
	return out
}

// ShortAddr renders an address as its first six and last four characters.
func ShortAddr(a common.Address) string {
	h := a.Hex()
	return h[:6] + "…" + h[len(h)-4:]
}
