package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
)

// Provider is what the application sees of a wallet: account access, an
// account-change subscription and a signer for the active account.
type Provider interface {
	RequestAccounts(ctx context.Context) (common.Address, error)
	OnAccountsChanged(fn func(*common.Address))
	Signer() (*Signer, error)
}

// Session is the Provider over locally stored signing wallets. It holds at
// most one active account.
type Session struct {
	mgr       *Manager
	approver  Approver
	preferred string
	logger    *log.Logger

	mu       sync.Mutex
	active   *Wallet
	granted  map[common.Address]bool
	listener func(*common.Address)
}

var _ Provider = (*Session)(nil)

// NewSession creates a session. preferred names the wallet to connect; empty
// means the manager's default wallet.
func NewSession(mgr *Manager, approver Approver, preferred string, logger *log.Logger) *Session {
	return &Session{
		mgr:       mgr,
		approver:  approver,
		preferred: preferred,
		logger:    logger,
		granted:   make(map[common.Address]bool),
	}
}

// RequestAccounts returns the active account, asking the user to approve the
// connection the first time an account is exposed.
func (s *Session) RequestAccounts(ctx context.Context) (common.Address, error) {
	w, err := s.resolve()
	if err != nil {
		return common.Address{}, err
	}

	s.mu.Lock()
	granted := s.granted[w.Address]
	s.mu.Unlock()

	if !granted {
		req := Request{Kind: RequestConnect, Account: w.Address}
		if err := s.approver.Approve(ctx, req); err != nil {
			s.logger.Info("connect rejected", "wallet", w.Name)
			return common.Address{}, rejected(err)
		}
	}
	if _, err := s.mgr.Keystore().Retrieve(w.KeyRef); err != nil {
		return common.Address{}, fmt.Errorf("%w: wallet %q: %w", ErrWalletUnavailable, w.Name, err)
	}

	s.mu.Lock()
	s.granted[w.Address] = true
	s.active = w
	s.mu.Unlock()

	s.logger.Info("wallet connected", "wallet", w.Name, "account", w.Address.Hex())
	return w.Address, nil
}

// OnAccountsChanged registers the single account-change listener. A later
// registration replaces the earlier one.
func (s *Session) OnAccountsChanged(fn func(*common.Address)) {
	s.mu.Lock()
	s.listener = fn
	s.mu.Unlock()
}

// Signer returns a signer for the active account.
func (s *Session) Signer() (*Signer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, ErrNoActiveAccount
	}
	return NewSigner(s.active, s.mgr.Keystore(), s.approver), nil
}

// Active returns the active account, or nil when disconnected.
func (s *Session) Active() *common.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	addr := s.active.Address
	return &addr
}

// Use switches the active account to the named wallet and notifies the
// listener. Switching is the user's own action, so no prompt is shown.
func (s *Session) Use(name string) error {
	w, err := s.mgr.Get(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.preferred = name
	s.active = w
	s.granted[w.Address] = true
	fn := s.listener
	s.mu.Unlock()

	s.logger.Info("account changed", "wallet", name, "account", w.Address.Hex())
	if fn != nil {
		addr := w.Address
		fn(&addr)
	}
	return nil
}

// Disconnect clears the active account and notifies the listener with nil.
func (s *Session) Disconnect() {
	s.mu.Lock()
	s.active = nil
	s.granted = make(map[common.Address]bool)
	fn := s.listener
	s.mu.Unlock()

	s.logger.Info("wallet disconnected")
	if fn != nil {
		fn(nil)
	}
}

// Wallets lists the wallets a user may switch to.
func (s *Session) Wallets() ([]*Wallet, error) {
	return s.mgr.List()
}

func (s *Session) resolve() (*Wallet, error) {
	s.mu.Lock()
	preferred := s.preferred
	s.mu.Unlock()

	if preferred != "" {
		w, err := s.mgr.Get(preferred)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWalletUnavailable, err)
		}
		return w, nil
	}
	w := s.mgr.Default()
	if w == nil {
		return nil, fmt.Errorf("%w: no signing wallet configured (run `counterdapp wallet import <name>`)", ErrWalletUnavailable)
	}
	return w, nil
}
