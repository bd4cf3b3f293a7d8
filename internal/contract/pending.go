package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/counterdapp/internal/config"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ReceiptPollInterval is how often Wait asks for the receipt.
var ReceiptPollInterval = config.ReceiptPoll

// PendingTx is a broadcast transaction that has not been confirmed yet.
type PendingTx struct {
	Hash   common.Hash
	Method string

	backend Backend
	poll    time.Duration
}

func newPendingTx(hash common.Hash, method string, backend Backend) *PendingTx {
	return &PendingTx{Hash: hash, Method: method, backend: backend, poll: ReceiptPollInterval}
}

// Wait polls for the receipt until the transaction is mined or ctx is done.
// There is no deadline of its own. A mined transaction with a failed status
// returns the receipt together with ErrReverted.
func (p *PendingTx) Wait(ctx context.Context) (*types.Receipt, error) {
	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()

	for {
		receipt, err := p.backend.TransactionReceipt(ctx, p.Hash)
		switch {
		case err == nil && receipt != nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, fmt.Errorf("%w: %s %s", ErrReverted, p.Method, p.Hash.Hex())
			}
			return receipt, nil
		case err != nil && !errors.Is(err, ethereum.NotFound):
			return nil, fmt.Errorf("fetching receipt %s: %w", p.Hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
