package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrReverted is returned by PendingTx.Wait when the transaction was
	// mined with a failed status.
	ErrReverted = errors.New("transaction reverted")
	// ErrNoContract means a call returned no data, usually because nothing
	// is deployed at the address on the connected network.
	ErrNoContract = errors.New("no contract code at address")
)

// Message is one stored history record as returned by getMessage.
type Message struct {
	Text      string
	Sender    common.Address
	Timestamp *big.Int // unix seconds
}

// Counter is a binding to the message counter contract. It holds no
// session state and is cheap to construct.
type Counter struct {
	address common.Address
	backend Backend
}

// NewCounter binds the counter deployed at address.
func NewCounter(address common.Address, backend Backend) *Counter {
	return &Counter{address: address, backend: backend}
}

// Address returns the bound contract address.
func (c *Counter) Address() common.Address {
	return c.address
}

// Count returns the current counter value.
func (c *Counter) Count(ctx context.Context) (*big.Int, error) {
	out, err := c.call(ctx, MethodCount)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// HistoryCount returns the number of stored messages.
func (c *Counter) HistoryCount(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, MethodGetHistoryCount)
	if err != nil {
		return 0, err
	}
	n := out[0].(*big.Int)
	if !n.IsUint64() {
		return 0, fmt.Errorf("%s: value %s out of range", MethodGetHistoryCount, n)
	}
	return n.Uint64(), nil
}

// Message returns the stored message at index i (0 is the oldest).
func (c *Counter) Message(ctx context.Context, i uint64) (Message, error) {
	out, err := c.call(ctx, MethodGetMessage, new(big.Int).SetUint64(i))
	if err != nil {
		return Message{}, err
	}
	return Message{
		Text:      out[0].(string),
		Sender:    out[1].(common.Address),
		Timestamp: out[2].(*big.Int),
	}, nil
}

func (c *Counter) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	input, err := CounterABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", method, err)
	}
	raw, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", method, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("calling %s: %w %s", method, ErrNoContract, c.address.Hex())
	}
	out, err := CounterABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", method, err)
	}
	return out, nil
}
