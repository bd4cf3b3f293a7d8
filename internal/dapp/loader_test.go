package dapp

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/Mohsinsiddi/counterdapp/internal/contract"
	"github.com/Mohsinsiddi/counterdapp/internal/contract/contracttest"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	counterAddr = common.HexToAddress("0x68E35E3eeF7fcd4c1ca64A7B68A3A793312d53aC")
	alice       = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

func seededChain(n int) *contracttest.Chain {
	c := contracttest.New(counterAddr)
	msgs := make([]string, n)
	for i := range msgs {
		msgs[i] = fmt.Sprintf("msg-%d", i)
	}
	c.Seed(alice, time.Unix(1_700_000_000, 0), msgs...)
	return c
}

func TestLoadAllNewestFirst(t *testing.T) {
	chain := seededChain(25)
	snap, err := NewLoader(contract.NewCounter(counterAddr, chain)).LoadAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(25), snap.Count.Int64())
	require.Len(t, snap.History, 25)
	for i, e := range snap.History {
		assert.Equal(t, fmt.Sprintf("msg-%d", 24-i), e.Message)
		assert.Equal(t, alice, e.Sender)
	}
	assert.True(t, snap.History[0].Timestamp.After(snap.History[24].Timestamp))
	assert.Equal(t, 25, chain.Calls(contract.MethodGetMessage))
}

func TestLoadAllEmpty(t *testing.T) {
	chain := contracttest.New(counterAddr)
	snap, err := NewLoader(contract.NewCounter(counterAddr, chain)).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), snap.Count.Int64())
	assert.Empty(t, snap.History)
	assert.Equal(t, 0, chain.Calls(contract.MethodGetMessage))
}

func TestLoadAllTimestampsInLoaderZone(t *testing.T) {
	chain := seededChain(1)
	l := NewLoader(contract.NewCounter(counterAddr, chain))
	l.loc = time.UTC

	snap, err := l.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), snap.History[0].Timestamp)
}

func TestLoadAllOneMessageFailsWholeLoad(t *testing.T) {
	chain := seededChain(10)
	chain.FailMessage(4, contracttest.ErrInjected)

	snap, err := NewLoader(contract.NewCounter(counterAddr, chain)).LoadAll(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, contracttest.ErrInjected)
	assert.Nil(t, snap.History)
	assert.Nil(t, snap.Count)
}

func TestLoadAllCountFails(t *testing.T) {
	chain := seededChain(3)
	chain.FailCall(contract.MethodCount, contracttest.ErrInjected)

	_, err := NewLoader(contract.NewCounter(counterAddr, chain)).LoadAll(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestLoadHistoryOnly(t *testing.T) {
	chain := seededChain(3)
	history, err := NewLoader(contract.NewCounter(counterAddr, chain)).LoadHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "msg-2", history[0].Message)
	assert.Equal(t, 0, chain.Calls(contract.MethodCount))
}

// gatedReader counts concurrent Message calls.
type gatedReader struct {
	n       uint64
	mu      sync.Mutex
	active  int
	maxSeen int
}

func (r *gatedReader) Count(context.Context) (*big.Int, error) { return big.NewInt(int64(r.n)), nil }

func (r *gatedReader) HistoryCount(context.Context) (uint64, error) { return r.n, nil }

func (r *gatedReader) Message(_ context.Context, i uint64) (contract.Message, error) {
	r.mu.Lock()
	r.active++
	if r.active > r.maxSeen {
		r.maxSeen = r.active
	}
	r.mu.Unlock()

	time.Sleep(2 * time.Millisecond)

	r.mu.Lock()
	r.active--
	r.mu.Unlock()
	return contract.Message{Text: fmt.Sprint(i), Timestamp: big.NewInt(int64(i))}, nil
}

func TestLoadAllBoundedConcurrency(t *testing.T) {
	r := &gatedReader{n: 40}
	snap, err := NewLoader(r).LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.History, 40)
	assert.Equal(t, "39", snap.History[0].Message)
	assert.Equal(t, "0", snap.History[39].Message)
	assert.LessOrEqual(t, r.maxSeen, historyFetchLimit)
}
