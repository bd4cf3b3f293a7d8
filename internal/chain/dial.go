package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrNoHealthyRPC is returned when no endpoint answered with the expected chain.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Client wraps an Ethereum RPC client together with the endpoint it uses.
type Client struct {
	*ethclient.Client
	URL     string
	ChainID int64
}

// Dial connects to the first endpoint in urls that answers eth_chainId with
// wantChainID, trying them in order. Each attempt is bounded by timeout.
func Dial(ctx context.Context, urls []string, wantChainID int64, timeout time.Duration, logger *log.Logger) (*Client, error) {
	var errs []error
	for _, url := range urls {
		c, err := dialOne(ctx, url, wantChainID, timeout)
		if err != nil {
			logger.Debug("rpc endpoint skipped", "url", url, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", url, err))
			continue
		}
		logger.Info("rpc connected", "url", url, "chain_id", c.ChainID)
		return c, nil
	}
	if len(errs) == 0 {
		return nil, ErrNoHealthyRPC
	}
	return nil, fmt.Errorf("%w: %w", ErrNoHealthyRPC, errors.Join(errs...))
}

func dialOne(ctx context.Context, url string, wantChainID int64, timeout time.Duration) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ec, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	id, err := ec.ChainID(ctx)
	if err != nil {
		ec.Close()
		return nil, err
	}
	if id.Int64() != wantChainID {
		ec.Close()
		return nil, fmt.Errorf("chain id %s, want %d", id, wantChainID)
	}
	return &Client{Client: ec, URL: url, ChainID: wantChainID}, nil
}

// Endpoints returns the custom URLs followed by the network defaults,
// without duplicates.
func Endpoints(custom []string, n *Network) []string {
	seen := make(map[string]bool, len(custom)+len(n.RPCs))
	out := make([]string, 0, len(custom)+len(n.RPCs))
	for _, u := range append(append([]string{}, custom...), n.RPCs...) {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
