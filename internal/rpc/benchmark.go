package rpc

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Benchmark probes all urls in parallel. Results keep the input order.
func Benchmark(ctx context.Context, urls []string, timeout time.Duration) []Endpoint {
	results := make([]Endpoint, len(urls))
	var g errgroup.Group
	for i, url := range urls {
		g.Go(func() error {
			results[i] = Probe(ctx, url, timeout)
			return nil
		})
	}
	g.Wait() //nolint:errcheck
	return results
}

// Arrange returns urls in the order they should be dialed. A single URL and
// the failover algorithm skip the benchmark.
func Arrange(ctx context.Context, urls []string, algo Algorithm, timeout time.Duration, logger *log.Logger) []string {
	if len(urls) < 2 || algo == AlgorithmFailover {
		return urls
	}
	results := Benchmark(ctx, urls, timeout)
	for _, r := range results {
		if r.Err != nil {
			logger.Debug("rpc probe failed", "url", r.URL, "err", r.Err)
			continue
		}
		logger.Debug("rpc probe", "url", r.URL, "latency", r.Latency, "block", r.BlockNumber)
	}
	return Order(results, algo)
}
