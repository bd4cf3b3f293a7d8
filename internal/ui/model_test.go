package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Mohsinsiddi/counterdapp/internal/contract"
	"github.com/Mohsinsiddi/counterdapp/internal/contract/contracttest"
	"github.com/Mohsinsiddi/counterdapp/internal/dapp"
	"github.com/Mohsinsiddi/counterdapp/internal/logging"
	"github.com/Mohsinsiddi/counterdapp/internal/wallet"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testContract = "0x68E35E3eeF7fcd4c1ca64A7B68A3A793312d53aC"
	testKey      = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

var testAccount = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

type harness struct {
	model   Model
	chain   *contracttest.Chain
	app     *dapp.App
	session *wallet.Session
	opened  []string
	copied  []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	prev := contract.ReceiptPollInterval
	contract.ReceiptPollInterval = 5 * time.Millisecond
	t.Cleanup(func() { contract.ReceiptPollInterval = prev })

	mgr := wallet.NewManager(wallet.NewInMemoryKeystore(), wallet.WithInMemoryStore())
	_, err := mgr.Import("dev", testKey)
	require.NoError(t, err)

	h := &harness{chain: contracttest.New(common.HexToAddress(testContract))}
	h.session = wallet.NewSession(mgr, wallet.AutoApprove, "", logging.Discard())
	h.app = dapp.New(h.session, h.chain, dapp.Options{
		ContractAddress: testContract,
		ExplorerURL:     "https://sepolia.etherscan.io",
		Logger:          logging.Discard(),
	})
	h.model = NewModel(context.Background(), h.app, Options{
		Network: "Sepolia",
		OpenURL: func(u string) error { h.opened = append(h.opened, u); return nil },
		Copy:    func(s string) error { h.copied = append(h.copied, s); return nil },
	})
	return h
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends one key and returns the command it produced.
func (h *harness) press(k string) tea.Cmd {
	m, cmd := h.model.Update(keyMsg(k))
	h.model = m.(Model)
	return cmd
}

// typeText enters text into the focused input, dropping cursor blink commands.
func (h *harness) typeText(s string) {
	for _, r := range s {
		m, _ := h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		h.model = m.(Model)
	}
}

// run executes cmd and feeds its message back, following up to a few hops.
func (h *harness) run(cmd tea.Cmd) {
	for i := 0; cmd != nil && i < 4; i++ {
		msg := cmd()
		if msg == nil {
			return
		}
		var m tea.Model
		m, cmd = h.model.Update(msg)
		h.model = m.(Model)
	}
}

func (h *harness) connect(t *testing.T) {
	t.Helper()
	cmd := h.press("c")
	require.NotNil(t, cmd)
	h.run(cmd)
	require.True(t, h.model.state.Connected())
}

func TestInitialViewDisconnected(t *testing.T) {
	h := newHarness(t)
	v := h.model.View()
	assert.Contains(t, v, "Not connected")
	assert.Contains(t, v, "Count")
	assert.Contains(t, v, "—")
	assert.Contains(t, v, "Sepolia")
	assert.NotNil(t, h.model.Init())
}

func TestConnectShowsAccountAndEmptyHistory(t *testing.T) {
	h := newHarness(t)
	h.connect(t)

	v := h.model.View()
	assert.Contains(t, v, "0xf39F…2266")
	assert.Contains(t, v, "No messages yet. Be the first!")
	assert.Equal(t, int64(0), h.model.state.Count.Int64())
	assert.True(t, h.model.input.Focused())
}

func TestRefreshShowsLoadingWhileReadsRun(t *testing.T) {
	h := newHarness(t)
	h.connect(t)
	h.press("esc")

	h.chain.HoldReads()
	defer h.chain.ReleaseReads()
	cmd := h.press("ctrl+r")
	require.NotNil(t, cmd)

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	require.Eventually(t, func() bool { return h.chain.HeldReads() > 0 }, 2*time.Second, 5*time.Millisecond)

	m, _ := h.model.Update(h.model.spin.Tick())
	h.model = m.(Model)
	assert.True(t, h.model.state.Loading)
	assert.Contains(t, h.model.View(), "Loading history…")

	h.chain.ReleaseReads()
	select {
	case msg := <-done:
		m, _ = h.model.Update(msg)
		h.model = m.(Model)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not finish after release")
	}
	assert.False(t, h.model.state.Loading)
	v := h.model.View()
	assert.NotContains(t, v, "Loading history…")
	assert.Contains(t, v, "No messages yet. Be the first!")
}

func TestConnectIgnoredWhenConnected(t *testing.T) {
	h := newHarness(t)
	h.connect(t)
	h.press("esc")
	assert.Nil(t, h.press("c"))
}

func TestIncrementFromInput(t *testing.T) {
	h := newHarness(t)
	h.chain.Seed(testAccount, time.Unix(1_700_000_000, 0), "older")
	h.connect(t)

	h.typeText("gm")
	assert.Equal(t, "gm", h.app.State().Input)

	cmd := h.press("enter")
	require.NotNil(t, cmd)
	assert.Contains(t, h.model.View(), "Waiting for confirmation")
	assert.Nil(t, h.press("enter"), "second submit while busy is ignored")

	h.run(cmd)

	assert.Equal(t, int64(2), h.model.state.Count.Int64())
	require.Len(t, h.model.state.History, 2)
	assert.Equal(t, "gm", h.model.state.History[0].Message)
	assert.Empty(t, h.model.input.Value())
	assert.Contains(t, h.model.View(), "Message stored")
	assert.Equal(t, 1, h.chain.Sends())
}

func TestEmptyMessageRejectedLocally(t *testing.T) {
	h := newHarness(t)
	h.connect(t)
	h.typeText("   ")

	assert.Nil(t, h.press("enter"))
	assert.Contains(t, h.model.View(), "Please enter a message")
	assert.Equal(t, 0, h.chain.Sends())
}

func TestResetNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	h.chain.Seed(testAccount, time.Now(), "a", "b")
	h.connect(t)
	h.press("esc")

	assert.Nil(t, h.press("r"))
	assert.Contains(t, h.model.View(), "Reset count and clear all messages on-chain?")

	assert.Nil(t, h.press("n"))
	assert.Contains(t, h.model.View(), "Reset cancelled")
	assert.Equal(t, 0, h.chain.Sends())

	h.press("r")
	cmd := h.press("y")
	require.NotNil(t, cmd)
	h.run(cmd)

	assert.Equal(t, int64(0), h.model.state.Count.Int64())
	assert.Empty(t, h.model.state.History)
	assert.Contains(t, h.model.View(), "Counter reset")
}

func TestExplorerAndCopyKeys(t *testing.T) {
	h := newHarness(t)

	h.run(h.press("o"))
	require.Len(t, h.opened, 1)
	assert.Equal(t, "https://sepolia.etherscan.io/address/"+testContract, h.opened[0])
	assert.Contains(t, h.model.View(), "Opening in browser")

	h.run(h.press("y"))
	assert.Equal(t, []string{testContract}, h.copied)
}

func TestLastTxKeyWithoutTransaction(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.press("t"))
	assert.Contains(t, h.model.View(), "no transaction yet")
}

func TestAccountsChangedNilClearsView(t *testing.T) {
	h := newHarness(t)
	h.chain.Seed(testAccount, time.Now(), "a")
	h.connect(t)

	h.session.Disconnect()
	m, cmd := h.model.Update(accountsChangedMsg{account: nil})
	h.model = m.(Model)

	assert.Nil(t, cmd)
	assert.False(t, h.model.state.Connected())
	assert.Nil(t, h.model.state.Count)
	v := h.model.View()
	assert.Contains(t, v, "Not connected")
	assert.Contains(t, v, "Wallet disconnected")
}

func TestAccountsChangedRefreshes(t *testing.T) {
	h := newHarness(t)
	h.connect(t)
	h.chain.Seed(testAccount, time.Now(), "new")

	addr := testAccount
	m, cmd := h.model.Update(accountsChangedMsg{account: &addr})
	h.model = m.(Model)
	require.NotNil(t, cmd)
	h.run(cmd)

	require.Len(t, h.model.state.History, 1)
	assert.Equal(t, "new", h.model.state.History[0].Message)
}

func TestApprovalDialog(t *testing.T) {
	h := newHarness(t)
	a := NewApprover()
	msgs := make(chan tea.Msg, 1)
	a.Attach(func(m tea.Msg) { msgs <- m })

	done := make(chan error, 1)
	req := wallet.Request{Kind: wallet.RequestSign, Account: testAccount, To: common.HexToAddress(testContract), Summary: `increment("gm")`}
	go func() { done <- a.Approve(context.Background(), req) }()

	m, _ := h.model.Update(<-msgs)
	h.model = m.(Model)
	v := h.model.View()
	assert.Contains(t, v, "Sign transaction")
	assert.Contains(t, v, `increment("gm")`)

	h.press("y")
	assert.NoError(t, <-done)
	assert.Nil(t, h.model.approval)

	go func() { done <- a.Approve(context.Background(), req) }()
	m, _ = h.model.Update(<-msgs)
	h.model = m.(Model)
	h.press("n")
	assert.ErrorIs(t, <-done, wallet.ErrUserRejected)
}

func TestApproverWithoutProgramRejects(t *testing.T) {
	err := NewApprover().Approve(context.Background(), wallet.Request{Kind: wallet.RequestConnect})
	assert.ErrorIs(t, err, wallet.ErrUserRejected)
}

func TestRejectedTransactionShowsNotice(t *testing.T) {
	h := newHarness(t)
	h.connect(t)

	m, _ := h.model.Update(txDoneMsg{action: "increment", err: wallet.ErrUserRejected})
	h.model = m.(Model)
	assert.Contains(t, h.model.View(), "Request rejected in wallet")
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	cmd := h.press("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, h.model.View())
}

func TestRenderHistory(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local)
	out := renderHistory([]dapp.Entry{
		{Message: "newest", Sender: testAccount, Timestamp: ts},
		{Message: "oldest", Sender: testAccount, Timestamp: ts.Add(-time.Hour)},
	}, 80)

	assert.Contains(t, out, "newest")
	assert.Contains(t, out, "0xf39F…2266")
	assert.Contains(t, out, "2024-05-01 12:30:00")
	assert.Less(t, strings.Index(out, "newest"), strings.Index(out, "oldest"))

	assert.Contains(t, renderHistory(nil, 80), "No messages yet. Be the first!")
}
