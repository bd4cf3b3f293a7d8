package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// MessageAddedEvent is a decoded MessageAdded log.
type MessageAddedEvent struct {
	Message     string
	Sender      common.Address
	Timestamp   *big.Int
	BlockNumber uint64
	TxHash      common.Hash
}

// MessageAdded returns the MessageAdded events emitted since fromBlock.
func (c *Counter) MessageAdded(ctx context.Context, fromBlock uint64) ([]MessageAddedEvent, error) {
	ev := CounterABI.Events[EventMessageAdded]
	logs, err := c.backend.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{c.address},
		Topics:    [][]common.Hash{{ev.ID}},
	})
	if err != nil {
		return nil, fmt.Errorf("filtering %s logs: %w", EventMessageAdded, err)
	}

	out := make([]MessageAddedEvent, 0, len(logs))
	for _, l := range logs {
		if len(l.Topics) < 2 {
			return nil, fmt.Errorf("%s log %s: missing sender topic", EventMessageAdded, l.TxHash.Hex())
		}
		vals, err := ev.Inputs.Unpack(l.Data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s log %s: %w", EventMessageAdded, l.TxHash.Hex(), err)
		}
		out = append(out, MessageAddedEvent{
			Message:     vals[0].(string),
			Sender:      common.BytesToAddress(l.Topics[1].Bytes()),
			Timestamp:   vals[1].(*big.Int),
			BlockNumber: l.BlockNumber,
			TxHash:      l.TxHash,
		})
	}
	return out, nil
}
