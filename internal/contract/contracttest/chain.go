// Package contracttest provides an in-memory counter contract that satisfies
// contract.Backend, with fault injection for tests.
package contracttest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/Mohsinsiddi/counterdapp/internal/contract"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChainID is the chain id the fake reports.
var ChainID = big.NewInt(31337)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("contracttest: injected failure")

type record struct {
	message string
	sender  common.Address
	ts      uint64
}

// Chain is a single-contract fake chain. The zero value is not usable; call New.
type Chain struct {
	mu sync.Mutex

	address common.Address
	count   *big.Int
	history []record
	nonces  map[common.Address]uint64
	block   uint64
	now     func() time.Time

	receipts map[common.Hash]*types.Receipt
	logs     []types.Log
	held     []*types.Transaction
	hold     bool
	readGate chan struct{}
	waiting  int

	calls      map[string]int
	sends      int
	callErr    map[string]error
	messageErr map[uint64]error
	sendErr    error
	revertNext bool
}

var _ contract.Backend = (*Chain)(nil)

// New returns an empty counter deployed at address.
func New(address common.Address) *Chain {
	return &Chain{
		address:    address,
		count:      new(big.Int),
		nonces:     make(map[common.Address]uint64),
		now:        time.Now,
		receipts:   make(map[common.Hash]*types.Receipt),
		calls:      make(map[string]int),
		callErr:    make(map[string]error),
		messageErr: make(map[uint64]error),
	}
}

// Seed appends messages from sender directly, as if each had been submitted
// with increment, one second apart starting at start.
func (c *Chain) Seed(sender common.Address, start time.Time, messages ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, m := range messages {
		c.history = append(c.history, record{message: m, sender: sender, ts: uint64(start.Unix()) + uint64(i)})
		c.count.Add(c.count, big.NewInt(1))
	}
}

// SetClock overrides the block timestamp source.
func (c *Chain) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// FailCall makes every read of method fail with err (nil clears).
func (c *Chain) FailCall(method string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.callErr, method)
		return
	}
	c.callErr[method] = err
}

// FailMessage makes getMessage(index) fail with err (nil clears).
func (c *Chain) FailMessage(index uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.messageErr, index)
		return
	}
	c.messageErr[index] = err
}

// FailSend makes SendTransaction fail with err (nil clears).
func (c *Chain) FailSend(err error) {
	c.mu.Lock()
	c.sendErr = err
	c.mu.Unlock()
}

// RevertNext makes the next mined transaction fail without changing state.
func (c *Chain) RevertNext() {
	c.mu.Lock()
	c.revertNext = true
	c.mu.Unlock()
}

// Hold keeps sent transactions unmined until Release.
func (c *Chain) Hold() {
	c.mu.Lock()
	c.hold = true
	c.mu.Unlock()
}

// Release mines every held transaction and stops holding.
func (c *Chain) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hold = false
	for _, tx := range c.held {
		c.mine(tx)
	}
	c.held = nil
}

// HoldReads blocks every contract read until ReleaseReads or until the
// caller's context ends.
func (c *Chain) HoldReads() {
	c.mu.Lock()
	if c.readGate == nil {
		c.readGate = make(chan struct{})
	}
	c.mu.Unlock()
}

// ReleaseReads unblocks held reads and stops holding.
func (c *Chain) ReleaseReads() {
	c.mu.Lock()
	if c.readGate != nil {
		close(c.readGate)
		c.readGate = nil
	}
	c.mu.Unlock()
}

// HeldReads returns how many reads are currently blocked by HoldReads.
func (c *Chain) HeldReads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiting
}

func (c *Chain) waitReadGate(ctx context.Context) error {
	c.mu.Lock()
	gate := c.readGate
	if gate == nil {
		c.mu.Unlock()
		return nil
	}
	c.waiting++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.waiting--
		c.mu.Unlock()
	}()
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Calls returns how many times a read method was called.
func (c *Chain) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// Sends returns how many transactions were accepted for broadcast.
func (c *Chain) Sends() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sends
}

// Count returns the current counter value.
func (c *Chain) Count() *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.count)
}

// Messages returns the stored messages, oldest first.
func (c *Chain) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.history))
	for i, r := range c.history {
		out[i] = r.message
	}
	return out
}

// --- contract.Backend ---

func (c *Chain) CallContract(ctx context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if call.To == nil || *call.To != c.address {
		return nil, nil
	}
	if err := c.waitReadGate(ctx); err != nil {
		return nil, err
	}
	if len(call.Data) < 4 {
		return nil, fmt.Errorf("contracttest: short calldata")
	}
	method, err := contract.CounterABI.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[method.Name]++
	if err := c.callErr[method.Name]; err != nil {
		return nil, err
	}

	switch method.Name {
	case contract.MethodCount:
		return method.Outputs.Pack(new(big.Int).Set(c.count))
	case contract.MethodGetHistoryCount:
		return method.Outputs.Pack(big.NewInt(int64(len(c.history))))
	case contract.MethodGetMessage:
		idx := args[0].(*big.Int)
		if !idx.IsUint64() || idx.Uint64() >= uint64(len(c.history)) {
			return nil, fmt.Errorf("execution reverted: index out of bounds")
		}
		if err := c.messageErr[idx.Uint64()]; err != nil {
			return nil, err
		}
		r := c.history[idx.Uint64()]
		return method.Outputs.Pack(r.message, r.sender, new(big.Int).SetUint64(r.ts))
	}
	return nil, fmt.Errorf("contracttest: %s is not a view method", method.Name)
}

func (c *Chain) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 60_000, nil
}

func (c *Chain) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (c *Chain) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(100_000_000), nil
}

func (c *Chain) ChainID(context.Context) (*big.Int, error) {
	return new(big.Int).Set(ChainID), nil
}

func (c *Chain) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nonces[account], nil
}

func (c *Chain) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if _, err := types.Sender(types.LatestSignerForChainID(ChainID), tx); err != nil {
		return fmt.Errorf("contracttest: invalid signature: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sends++
	if c.hold {
		c.held = append(c.held, tx)
		return nil
	}
	c.mine(tx)
	return nil
}

func (c *Chain) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (c *Chain) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var from uint64
	if q.FromBlock != nil {
		from = q.FromBlock.Uint64()
	}
	var out []types.Log
	for _, l := range c.logs {
		if l.BlockNumber >= from {
			out = append(out, l)
		}
	}
	return out, nil
}

// mine applies tx to the contract state. Callers hold c.mu.
func (c *Chain) mine(tx *types.Transaction) {
	from, _ := types.Sender(types.LatestSignerForChainID(ChainID), tx)
	c.nonces[from] = tx.Nonce() + 1
	c.block++

	receipt := &types.Receipt{
		Type:        tx.Type(),
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: new(big.Int).SetUint64(c.block),
		GasUsed:     tx.Gas() / 2,
	}
	c.receipts[tx.Hash()] = receipt

	if c.revertNext || tx.To() == nil || *tx.To() != c.address || len(tx.Data()) < 4 {
		c.revertNext = false
		receipt.Status = types.ReceiptStatusFailed
		return
	}
	method, err := contract.CounterABI.MethodById(tx.Data()[:4])
	if err != nil {
		receipt.Status = types.ReceiptStatusFailed
		return
	}

	switch method.Name {
	case contract.MethodIncrement:
		args, err := method.Inputs.Unpack(tx.Data()[4:])
		if err != nil {
			receipt.Status = types.ReceiptStatusFailed
			return
		}
		r := record{message: args[0].(string), sender: from, ts: uint64(c.now().Unix())}
		c.history = append(c.history, r)
		c.count.Add(c.count, big.NewInt(1))
		c.emitMessageAdded(tx.Hash(), r)
	case contract.MethodReset:
		c.count = new(big.Int)
		c.history = nil
	default:
		receipt.Status = types.ReceiptStatusFailed
	}
}

func (c *Chain) emitMessageAdded(txHash common.Hash, r record) {
	ev := contract.CounterABI.Events[contract.EventMessageAdded]
	data, err := ev.Inputs.NonIndexed().Pack(r.message, new(big.Int).SetUint64(r.ts))
	if err != nil {
		return
	}
	c.logs = append(c.logs, types.Log{
		Address:     c.address,
		Topics:      []common.Hash{ev.ID, common.BytesToHash(r.sender.Bytes())},
		Data:        data,
		BlockNumber: c.block,
		TxHash:      txHash,
	})
}
