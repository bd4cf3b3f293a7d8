package contract

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcMock answers eth_call by selector and every other method with a fixed
// result.
func rpcMock(t *testing.T, calls map[string][]byte, results map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		switch {
		case req.Method == "eth_call":
			var msg struct {
				Input string `json:"input"`
				Data  string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(req.Params[0], &msg))
			input := msg.Input
			if input == "" {
				input = msg.Data
			}
			raw, ok := calls[strings.TrimPrefix(input, "0x")[:8]]
			if !ok {
				resp["error"] = map[string]interface{}{"code": 3, "message": "execution reverted"}
				break
			}
			resp["result"] = "0x" + hex.EncodeToString(raw)
		default:
			if res, ok := results[req.Method]; ok {
				resp["result"] = res
			} else {
				resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
}

func selector(method string) string {
	return hex.EncodeToString(CounterABI.Methods[method].ID)
}

func packOut(t *testing.T, method string, vals ...interface{}) []byte {
	t.Helper()
	out, err := CounterABI.Methods[method].Outputs.Pack(vals...)
	require.NoError(t, err)
	return out
}

func dialMock(t *testing.T, srv *httptest.Server) *Counter {
	t.Helper()
	ec, err := ethclient.Dial(srv.URL)
	require.NoError(t, err)
	t.Cleanup(ec.Close)
	return NewCounter(common.HexToAddress("0x68E35E3eeF7fcd4c1ca64A7B68A3A793312d53aC"), ec)
}

func TestCounterABIShape(t *testing.T) {
	for _, m := range []string{MethodCount, MethodIncrement, MethodReset, MethodGetHistoryCount, MethodGetMessage} {
		assert.Contains(t, CounterABI.Methods, m)
	}
	assert.True(t, CounterABI.Methods[MethodCount].IsConstant())
	assert.False(t, CounterABI.Methods[MethodIncrement].IsConstant())

	ev, ok := CounterABI.Events[EventMessageAdded]
	require.True(t, ok)
	require.Len(t, ev.Inputs, 3)
	assert.True(t, ev.Inputs[1].Indexed)
	assert.False(t, ev.Inputs[0].Indexed)
}

func TestEthclientReads(t *testing.T) {
	sender := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	srv := rpcMock(t, map[string][]byte{
		selector(MethodCount):           packOut(t, MethodCount, big.NewInt(42)),
		selector(MethodGetHistoryCount): packOut(t, MethodGetHistoryCount, big.NewInt(7)),
		selector(MethodGetMessage):      packOut(t, MethodGetMessage, "gm", sender, big.NewInt(1_700_000_000)),
	}, nil)
	defer srv.Close()
	c := dialMock(t, srv)
	ctx := context.Background()

	n, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n.Int64())

	h, err := c.HistoryCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), h)

	m, err := c.Message(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "gm", m.Text)
	assert.Equal(t, sender, m.Sender)
	assert.Equal(t, int64(1_700_000_000), m.Timestamp.Int64())
}

func TestEthclientEmptyResult(t *testing.T) {
	srv := rpcMock(t, map[string][]byte{selector(MethodCount): {}}, nil)
	defer srv.Close()

	_, err := dialMock(t, srv).Count(context.Background())
	assert.ErrorIs(t, err, ErrNoContract)
}

func TestEthclientCallError(t *testing.T) {
	srv := rpcMock(t, nil, nil)
	defer srv.Close()

	_, err := dialMock(t, srv).HistoryCount(context.Background())
	assert.ErrorContains(t, err, "calling getHistoryCount")
}

func TestEthclientReceiptNotFoundKeepsPolling(t *testing.T) {
	srv := rpcMock(t, nil, map[string]interface{}{"eth_getTransactionReceipt": nil})
	defer srv.Close()
	c := dialMock(t, srv)

	p := &PendingTx{Hash: common.HexToHash("0x01"), Method: MethodReset, backend: c.backend, poll: 10 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	receipt, err := p.Wait(ctx)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrReverted)
	assert.Nil(t, receipt)
}
