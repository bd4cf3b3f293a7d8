package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/Mohsinsiddi/counterdapp/internal/dapp"
	"github.com/Mohsinsiddi/counterdapp/internal/wallet"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
)

// Options configures the full-screen view.
type Options struct {
	Network string

	// OpenURL and Copy default to the system browser and clipboard.
	OpenURL func(string) error
	Copy    func(string) error
	// Disconnect, when set, is bound to the x key.
	Disconnect func()
}

// Model is the Bubble Tea model of the counter dApp.
type Model struct {
	ctx  context.Context
	app  *dapp.App
	opts Options

	input   textinput.Model
	spin    spinner.Model
	history viewport.Model

	state        dapp.State
	busy         string // connect, increment or reset while its command runs
	confirmReset bool
	approval     *approvalMsg

	notice    string
	noticeErr bool

	width    int
	Quitting bool
}

// NewModel creates the view over app. ctx bounds every remote call the view
// starts.
func NewModel(ctx context.Context, app *dapp.App, opts Options) Model {
	if opts.OpenURL == nil {
		opts.OpenURL = browser.OpenURL
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	in := textinput.New()
	in.Placeholder = "Enter a message"
	in.Prompt = "› "
	in.CharLimit = 280
	in.Width = 48

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleChain

	vp := viewport.New(60, 10) // resized on the first WindowSizeMsg

	m := Model{
		ctx:     ctx,
		app:     app,
		opts:    opts,
		input:   in,
		spin:    sp,
		history: vp,
		width:   80,
	}
	m.sync()
	return m
}

func (m Model) Init() tea.Cmd { return m.spin.Tick }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.history.Width = max(20, msg.Width-4)
		m.history.Height = max(3, msg.Height-16)
		m.input.Width = max(10, msg.Width-12)
		m.sync()

	case spinner.TickMsg:
		// Loads run inside commands; pick up their flags as they change.
		if st := m.app.State(); st.Loading != m.state.Loading || st.LoadingHistory != m.state.LoadingHistory {
			m.sync()
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case approvalMsg:
		m.approval = &msg

	case connectedMsg:
		m.busy = ""
		m.sync()
		if msg.err != nil {
			m.setNotice(errText(msg.err), true)
		} else {
			m.setNotice("Wallet connected", false)
			m.input.Focus()
		}

	case loadedMsg:
		m.sync()
		if msg.err != nil {
			m.setNotice(errText(msg.err), true)
		}

	case txDoneMsg:
		m.busy = ""
		m.sync()
		if msg.err != nil {
			m.setNotice(errText(msg.err), true)
			break
		}
		if msg.action == "reset" {
			m.setNotice("Counter reset", false)
		} else {
			m.input.Reset()
			m.setNotice("Message stored", false)
		}

	case accountsChangedMsg:
		m.sync()
		if msg.account == nil {
			m.input.Blur()
			m.setNotice("Wallet disconnected", false)
			return m, nil
		}
		m.setNotice("Account changed to "+dapp.ShortAddr(*msg.account), false)
		return m, refreshCmd(m.ctx, m.app)

	case noticeMsg:
		m.setNotice(msg.text, msg.err)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.answerApproval(wallet.ErrUserRejected)
		m.Quitting = true
		return m, tea.Quit
	}

	if m.approval != nil {
		switch msg.String() {
		case "y", "enter":
			m.answerApproval(nil)
		case "n", "esc":
			m.answerApproval(wallet.ErrUserRejected)
		}
		return m, nil
	}

	if m.confirmReset {
		switch msg.String() {
		case "y":
			m.confirmReset = false
			m.busy = "reset"
			return m, resetCmd(m.ctx, m.app)
		case "n", "esc":
			m.confirmReset = false
			m.setNotice("Reset cancelled", false)
		}
		return m, nil
	}

	m.notice = ""

	if m.input.Focused() {
		switch msg.String() {
		case "esc":
			m.input.Blur()
			return m, nil
		case "enter":
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.app.SetInput(m.input.Value())
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		m.Quitting = true
		return m, tea.Quit

	case "c":
		if !m.state.Connected() && m.busy == "" {
			m.busy = "connect"
			return m, connectCmd(m.ctx, m.app)
		}

	case "i", "tab":
		if m.state.Connected() {
			m.input.Focus()
		}

	case "enter":
		if m.state.Connected() {
			return m.submit()
		}

	case "r":
		if m.state.Connected() && !m.isBusy() {
			m.confirmReset = true
		}

	case "ctrl+r":
		if m.state.Connected() {
			return m, refreshCmd(m.ctx, m.app)
		}

	case "o":
		url, err := m.app.ExplorerURL()
		if err != nil {
			m.setNotice(errText(err), true)
			return m, nil
		}
		return m, openURLCmd(m.opts.OpenURL, url)

	case "t":
		url, err := m.app.TxURL()
		if err != nil {
			m.setNotice(errText(err), true)
			return m, nil
		}
		return m, openURLCmd(m.opts.OpenURL, url)

	case "y":
		return m, copyCmd(m.opts.Copy, m.app.ContractAddress())

	case "x":
		if m.state.Connected() && m.opts.Disconnect != nil && !m.isBusy() {
			disconnect := m.opts.Disconnect
			return m, func() tea.Msg {
				disconnect()
				return nil
			}
		}

	case "up", "down", "k", "j", "pgup", "pgdown":
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submit starts an increment with the current input. Empty input and a
// running flow are handled here, without a remote call.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	switch {
	case !m.state.Connected():
		m.setNotice("Connect a wallet first", true)
		return m, nil
	case m.isBusy():
		return m, nil
	case strings.TrimSpace(text) == "":
		m.setNotice("Please enter a message", true)
		return m, nil
	}
	m.busy = "increment"
	m.app.SetInput(text)
	return m, incrementCmd(m.ctx, m.app, text)
}

func (m Model) isBusy() bool {
	return m.busy != "" || m.state.Pending()
}

func (m *Model) answerApproval(err error) {
	if m.approval == nil {
		return
	}
	m.approval.reply <- err
	m.approval = nil
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

// sync takes a fresh snapshot from the app.
func (m *Model) sync() {
	m.state = m.app.State()
	m.history.SetContent(renderHistory(m.state.History, m.history.Width))
}

func errText(err error) string {
	switch {
	case errors.Is(err, wallet.ErrUserRejected):
		return "Request rejected in wallet"
	case errors.Is(err, dapp.ErrEmptyMessage):
		return "Please enter a message"
	}
	return err.Error()
}
