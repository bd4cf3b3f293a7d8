package rpc

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Probe dials url and fetches the head block, measuring the round trip.
// The whole probe is bounded by timeout.
func Probe(ctx context.Context, url string, timeout time.Duration) Endpoint {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ep := Endpoint{URL: url}
	ec, err := ethclient.DialContext(ctx, url)
	if err != nil {
		ep.Err = err
		return ep
	}
	defer ec.Close()

	start := time.Now()
	ep.BlockNumber, ep.Err = ec.BlockNumber(ctx)
	ep.Latency = time.Since(start)
	return ep
}
