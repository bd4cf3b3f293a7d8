package rpc_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Mohsinsiddi/counterdapp/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthy(url string, latency time.Duration, block uint64) rpc.Endpoint {
	return rpc.Endpoint{URL: url, Latency: latency, BlockNumber: block}
}

func failed(url string) rpc.Endpoint {
	return rpc.Endpoint{URL: url, Err: errors.New("connection refused")}
}

func TestOrderFastestFirst(t *testing.T) {
	endpoints := []rpc.Endpoint{
		healthy("http://slow.rpc", 200*time.Millisecond, 100),
		healthy("http://fast.rpc", 30*time.Millisecond, 100),
		healthy("http://medium.rpc", 80*time.Millisecond, 100),
	}

	got := rpc.Order(endpoints, rpc.AlgorithmFastest)
	assert.Equal(t, []string{"http://fast.rpc", "http://medium.rpc", "http://slow.rpc"}, got)
}

func TestOrderStaleAfterFresh(t *testing.T) {
	endpoints := []rpc.Endpoint{
		healthy("http://stale.rpc", 10*time.Millisecond, 990), // 10 blocks behind
		healthy("http://fresh.rpc", 50*time.Millisecond, 1000),
	}

	got := rpc.Order(endpoints, rpc.AlgorithmFastest)
	assert.Equal(t, []string{"http://fresh.rpc", "http://stale.rpc"}, got, "stale node should rank last even if faster")
}

func TestOrderFailedProbesLast(t *testing.T) {
	endpoints := []rpc.Endpoint{
		failed("http://dead.rpc"),
		healthy("http://ok.rpc", 100*time.Millisecond, 5),
	}

	got := rpc.Order(endpoints, rpc.AlgorithmFastest)
	assert.Equal(t, []string{"http://ok.rpc", "http://dead.rpc"}, got)
}

func TestOrderAllFailedKeepsInputOrder(t *testing.T) {
	endpoints := []rpc.Endpoint{failed("http://a"), failed("http://b")}
	assert.Equal(t, []string{"http://a", "http://b"}, rpc.Order(endpoints, rpc.AlgorithmFastest))
}

func TestOrderFailoverKeepsInputOrder(t *testing.T) {
	endpoints := []rpc.Endpoint{
		healthy("http://primary.rpc", 300*time.Millisecond, 100),
		healthy("http://backup.rpc", 10*time.Millisecond, 100),
	}

	got := rpc.Order(endpoints, rpc.AlgorithmFailover)
	assert.Equal(t, []string{"http://primary.rpc", "http://backup.rpc"}, got)
}

func TestOrderEmpty(t *testing.T) {
	assert.Empty(t, rpc.Order(nil, rpc.AlgorithmFastest))
}

func TestParseAlgorithm(t *testing.T) {
	algo, err := rpc.ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, rpc.AlgorithmFastest, algo)

	algo, err = rpc.ParseAlgorithm("failover")
	require.NoError(t, err)
	assert.Equal(t, rpc.AlgorithmFailover, algo)

	_, err = rpc.ParseAlgorithm("round-robin")
	assert.ErrorContains(t, err, "unknown rpc algorithm")
}
