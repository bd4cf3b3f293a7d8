package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs transactions for the active account, asking the Approver
// before every signature.
type Signer struct {
	wallet   *Wallet
	ks       KeystoreBackend
	approver Approver
}

// NewSigner creates a signer for the given wallet.
func NewSigner(w *Wallet, ks KeystoreBackend, approver Approver) *Signer {
	return &Signer{wallet: w, ks: ks, approver: approver}
}

// Address returns the wallet's address.
func (s *Signer) Address() common.Address {
	return s.wallet.Address
}

// SignTx asks for approval, then signs tx with the London signer.
func (s *Signer) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int, summary string) (*types.Transaction, error) {
	req := Request{Kind: RequestSign, Account: s.wallet.Address, Summary: summary}
	if to := tx.To(); to != nil {
		req.To = *to
	}
	if err := s.approver.Approve(ctx, req); err != nil {
		return nil, rejected(err)
	}

	hexKey, err := s.ks.Retrieve(s.wallet.KeyRef)
	if err != nil {
		return nil, fmt.Errorf("retrieving key: %w", err)
	}

	privKey, err := crypto.HexToECDSA(normaliseHexKey(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if got := crypto.PubkeyToAddress(privKey.PublicKey); got != s.wallet.Address {
		return nil, fmt.Errorf("%w: key for %s does not match wallet %q", ErrWalletUnavailable, got.Hex(), s.wallet.Name)
	}

	signed, err := types.SignTx(tx, types.NewLondonSigner(chainID), privKey)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}
	return signed, nil
}

// rejected maps any approver error onto ErrUserRejected, keeping the cause.
func rejected(err error) error {
	if errors.Is(err, ErrUserRejected) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUserRejected, err)
}
