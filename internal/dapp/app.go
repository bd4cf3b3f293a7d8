package dapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Mohsinsiddi/counterdapp/internal/chain"
	"github.com/Mohsinsiddi/counterdapp/internal/contract"
	"github.com/Mohsinsiddi/counterdapp/internal/wallet"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/atomic"
)

// Options configures an App.
type Options struct {
	// ContractAddress is the 0x-prefixed counter address.
	ContractAddress string
	// ExplorerURL is the block explorer base, e.g. https://sepolia.etherscan.io.
	// Empty disables explorer links.
	ExplorerURL string
	Logger      *log.Logger
}

// App owns the application state and runs every user action against the
// wallet and the counter contract.
type App struct {
	provider wallet.Provider
	backend  contract.Backend
	address  string
	explorer string
	logger   *log.Logger

	pending atomic.Bool

	mu          sync.Mutex
	state       State
	loads       int // refreshes in flight
	accountHook func(*common.Address)
}

// New creates an App and subscribes to account changes on provider.
func New(provider wallet.Provider, backend contract.Backend, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	a := &App{
		provider: provider,
		backend:  backend,
		address:  opts.ContractAddress,
		explorer: strings.TrimRight(opts.ExplorerURL, "/"),
		logger:   logger,
	}
	provider.OnAccountsChanged(a.accountsChanged)
	return a
}

// OnAccountChange registers fn to run after the state has absorbed an
// account change. A non-nil account means the caller should Refresh.
func (a *App) OnAccountChange(fn func(*common.Address)) {
	a.mu.Lock()
	a.accountHook = fn
	a.mu.Unlock()
}

// State returns a copy of the current state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.clone()
}

// Counter returns a binding for the configured contract. It is derived on
// every call so no signer outlives an account change.
func (a *App) Counter() *contract.Counter {
	return contract.NewCounter(common.HexToAddress(a.address), a.backend)
}

// Connect asks the wallet for an account and loads the contract data.
func (a *App) Connect(ctx context.Context) error {
	addr, err := a.provider.RequestAccounts(ctx)
	if err != nil {
		a.logger.Warn("connect failed", "err", err)
		return err
	}
	a.HandleAccountsChanged(&addr)
	return a.Refresh(ctx)
}

// Refresh reloads the count and the full history. On failure the previous
// values stay in place. The loading flags stay set until the last of
// overlapping refreshes returns.
func (a *App) Refresh(ctx context.Context) error {
	a.mu.Lock()
	if a.state.Account == nil {
		a.mu.Unlock()
		return ErrNotConnected
	}
	account := *a.state.Account
	a.loads++
	a.state.Loading = true
	a.state.LoadingHistory = true
	a.mu.Unlock()

	snap, err := NewLoader(a.Counter()).LoadAll(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loads--
	if a.loads == 0 {
		a.state.Loading = false
		a.state.LoadingHistory = false
	}
	if err != nil {
		a.logger.Error("load failed", "err", err)
		return err
	}
	// Drop the result if the account went away while loading.
	if a.state.Account == nil || *a.state.Account != account {
		a.logger.Debug("discarding stale load", "account", account.Hex())
		return nil
	}
	a.state.Count = snap.Count
	a.state.History = snap.History
	a.logger.Debug("loaded", "count", snap.Count, "history", len(snap.History))
	return nil
}

// Increment stores message on-chain and bumps the counter. Surrounding
// whitespace is trimmed; an empty message is rejected without a remote call.
func (a *App) Increment(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrEmptyMessage
	}
	return a.transact(ctx, "increment", func(c *contract.Counter, s *wallet.Signer) (*contract.PendingTx, error) {
		return c.Increment(ctx, s, message)
	})
}

// Reset zeroes the counter and clears the history. confirmed must be true.
func (a *App) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return a.transact(ctx, "reset", func(c *contract.Counter, s *wallet.Signer) (*contract.PendingTx, error) {
		return c.Reset(ctx, s)
	})
}

type submitFunc func(*contract.Counter, *wallet.Signer) (*contract.PendingTx, error)

// transact runs one mutating flow: submit, wait for confirmation, reload.
// A confirmed increment clears the input. Only one flow runs at a time.
func (a *App) transact(ctx context.Context, action string, submit submitFunc) error {
	if !a.State().Connected() {
		return ErrNotConnected
	}
	if !a.pending.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer a.pending.Store(false)

	a.setStatus(TxPending, nil)

	tx, err := a.submit(submit)
	if err == nil {
		a.logger.Info("transaction sent", "action", action, "tx", tx.Hash.Hex())
		_, err = tx.Wait(ctx)
	}
	if err != nil {
		var hash *common.Hash
		if tx != nil {
			hash = &tx.Hash
		}
		a.setStatus(TxFailed, hash)
		a.logger.Error("transaction failed", "action", action, "err", err)
		return fmt.Errorf("%w: %s: %w", ErrTransactionFailed, action, err)
	}

	a.logger.Info("transaction confirmed", "action", action, "tx", tx.Hash.Hex())
	a.mu.Lock()
	a.state.Status = TxIdle
	a.state.LastTx = &tx.Hash
	if action == "increment" {
		a.state.Input = ""
	}
	a.mu.Unlock()

	// The transaction is final even if the wallet disconnected meanwhile.
	if err := a.Refresh(ctx); err != nil && !errors.Is(err, ErrNotConnected) {
		return err
	}
	return nil
}

func (a *App) submit(submit submitFunc) (*contract.PendingTx, error) {
	signer, err := a.provider.Signer()
	if err != nil {
		return nil, err
	}
	return submit(a.Counter(), signer)
}

func (a *App) setStatus(s TxStatus, hash *common.Hash) {
	a.mu.Lock()
	a.state.Status = s
	if hash != nil {
		h := *hash
		a.state.LastTx = &h
	}
	a.mu.Unlock()
}

// HandleAccountsChanged replaces the active account. A nil account discards
// the count and the history. It only updates state; loading is up to the
// caller.
func (a *App) HandleAccountsChanged(addr *common.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if addr == nil {
		a.state.Account = nil
		a.state.Count = nil
		a.state.History = nil
		a.state.LastTx = nil
		return
	}
	acc := *addr
	a.state.Account = &acc
}

func (a *App) accountsChanged(addr *common.Address) {
	a.HandleAccountsChanged(addr)
	a.logger.Info("accounts changed", "connected", addr != nil)

	a.mu.Lock()
	hook := a.accountHook
	a.mu.Unlock()
	if hook != nil {
		hook(addr)
	}
}

// SetInput updates the pending message text.
func (a *App) SetInput(text string) {
	a.mu.Lock()
	a.state.Input = text
	a.mu.Unlock()
}

// ContractAddress returns the configured contract address.
func (a *App) ContractAddress() string {
	return a.address
}

// ExplorerURL returns the block explorer page of the contract.
func (a *App) ExplorerURL() (string, error) {
	return ContractURL(a.explorer, a.address)
}

// ContractURL builds {explorer}/address/{address}. The address must be
// 0x-prefixed hex and the explorer non-empty.
func ContractURL(explorer, address string) (string, error) {
	if !strings.HasPrefix(address, "0x") || !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: contract address %q", ErrValidationFailed, address)
	}
	if explorer == "" {
		return "", fmt.Errorf("%w: no block explorer for this network", ErrValidationFailed)
	}
	return chain.AddressURL(explorer, common.HexToAddress(address)), nil
}

// TxURL returns the explorer page of the last transaction, if any.
func (a *App) TxURL() (string, error) {
	st := a.State()
	if st.LastTx == nil {
		return "", fmt.Errorf("%w: no transaction yet", ErrValidationFailed)
	}
	if a.explorer == "" {
		return "", fmt.Errorf("%w: no block explorer for this network", ErrValidationFailed)
	}
	return chain.TxURL(a.explorer, *st.LastTx), nil
}

// IsUserRejection reports whether err came from the user declining a prompt.
func IsUserRejection(err error) bool {
	return errors.Is(err, wallet.ErrUserRejected)
}
