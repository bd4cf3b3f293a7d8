package rpc

import (
	"fmt"
	"slices"
	"time"
)

// Algorithm defines how RPC endpoints are ordered before dialing.
type Algorithm string

const (
	AlgorithmFastest  Algorithm = "fastest"
	AlgorithmFailover Algorithm = "failover"

	// Discard nodes more than this many blocks behind the best.
	staleBlockThreshold = 3
)

// ParseAlgorithm maps a config value to an Algorithm. Empty means fastest.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", AlgorithmFastest:
		return AlgorithmFastest, nil
	case AlgorithmFailover:
		return AlgorithmFailover, nil
	}
	return "", fmt.Errorf("unknown rpc algorithm %q: choose fastest or failover", s)
}

// Endpoint is a probed RPC endpoint.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Err         error
}

// Healthy reports whether the probe succeeded.
func (e Endpoint) Healthy() bool { return e.Err == nil }

// Order returns the endpoint URLs in dial order.
//
// Fastest puts healthy, up-to-date endpoints first by score, then stale
// ones, then the ones that failed the probe, so the dialer still has
// something to try. Failover keeps the configured order.
func Order(endpoints []Endpoint, algo Algorithm) []string {
	if algo == AlgorithmFailover {
		out := make([]string, len(endpoints))
		for i, e := range endpoints {
			out[i] = e.URL
		}
		return out
	}

	var bestBlock uint64
	for _, e := range endpoints {
		if e.Healthy() && e.BlockNumber > bestBlock {
			bestBlock = e.BlockNumber
		}
	}

	ranked := slices.Clone(endpoints)
	slices.SortStableFunc(ranked, func(a, b Endpoint) int {
		ta, tb := tier(a, bestBlock), tier(b, bestBlock)
		if ta != tb {
			return ta - tb
		}
		sa, sb := score(a, bestBlock), score(b, bestBlock)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		}
		return 0
	})

	out := make([]string, len(ranked))
	for i, e := range ranked {
		out[i] = e.URL
	}
	return out
}

// --- scoring ---

func tier(e Endpoint, bestBlock uint64) int {
	switch {
	case !e.Healthy():
		return 2
	case bestBlock-e.BlockNumber > staleBlockThreshold:
		return 1
	}
	return 0
}

func score(e Endpoint, bestBlock uint64) float64 {
	if !e.Healthy() {
		return 0
	}
	var s float64
	// Latency score: higher = faster.
	if ms := e.Latency.Milliseconds(); ms > 0 {
		s += 1000.0 / float64(ms)
	} else {
		s += 1000.0
	}
	// Loses 1 point per block behind.
	s += 10 - float64(bestBlock-e.BlockNumber)
	return s
}
