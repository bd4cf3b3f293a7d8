package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/counterdapp/internal/config"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

// Increment submits increment(message). The returned handle resolves once
// the transaction is mined.
func (c *Counter) Increment(ctx context.Context, signer TxSigner, message string) (*PendingTx, error) {
	return c.transact(ctx, signer, fmt.Sprintf("increment(%q)", message), MethodIncrement, message)
}

// Reset submits reset(), which zeroes the counter and clears the history.
func (c *Counter) Reset(ctx context.Context, signer TxSigner) (*PendingTx, error) {
	return c.transact(ctx, signer, "reset()", MethodReset)
}

func (c *Counter) transact(ctx context.Context, signer TxSigner, summary, method string, args ...interface{}) (*PendingTx, error) {
	data, err := CounterABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", method, err)
	}
	from := signer.Address()

	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting chain id: %w", err)
	}

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("getting nonce: %w", err)
	}

	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &c.address, Data: data})
	if err != nil {
		gas = config.GasLimitContractCall // fallback
	}

	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting gas price: %w", err)
	}
	tip, err := c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		tip = gasPrice
	}
	feeCap := new(big.Int).Mul(gasPrice, big.NewInt(2))
	if tip.Cmp(feeCap) > 0 {
		tip = feeCap
	}

	to := c.address
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     big.NewInt(0),
		Data:      data,
	})

	signed, err := signer.SignTx(ctx, tx, chainID, summary)
	if err != nil {
		return nil, err
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("broadcasting %s: %w", method, err)
	}
	return newPendingTx(signed.Hash(), method, c.backend), nil
}
