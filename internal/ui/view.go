package ui

import (
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/counterdapp/internal/dapp"
)

const timeLayout = "2006-01-02 15:04:05"

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var sb strings.Builder
	st := m.state

	// ── Title ─────────────────────────────────────────────────────────────
	title := "◆ Counter dApp"
	if m.opts.Network != "" {
		title += "  ·  " + m.opts.Network
	}
	sb.WriteString(StyleTitle.Render(title) + "\n")

	// ── Account ───────────────────────────────────────────────────────────
	switch {
	case st.Account != nil:
		sb.WriteString(StyleMeta.Render("Connected  ") + StyleAddress.Render(dapp.ShortAddr(*st.Account)) + "\n")
	case m.busy == "connect":
		sb.WriteString(m.spin.View() + StyleMeta.Render(" Connecting wallet…") + "\n")
	default:
		sb.WriteString(StyleWarning.Render("Not connected") + StyleMeta.Render("  press c to connect") + "\n")
	}
	sb.WriteString(StyleMeta.Render("Contract   ") + StyleAddress.Render(TruncateAddr(m.app.ContractAddress())) + "\n\n")

	// ── Counter ───────────────────────────────────────────────────────────
	count := "—"
	if st.Count != nil {
		count = st.Count.String()
	}
	countLine := StyleBorder.Render(StyleMeta.Render("Count ") + StyleCount.Render(count))
	if st.Loading {
		countLine += " " + m.spin.View()
	}
	sb.WriteString(countLine + "\n\n")

	// ── Input ─────────────────────────────────────────────────────────────
	if st.Connected() {
		sb.WriteString(m.input.View() + "\n\n")
	}

	// ── History ───────────────────────────────────────────────────────────
	sb.WriteString(StyleChain.Render(fmt.Sprintf("Message History (%d)", len(st.History))) + "\n")
	switch {
	case !st.Connected():
		sb.WriteString(StyleMeta.Render("  Connect a wallet to load messages") + "\n")
	case st.LoadingHistory && len(st.History) == 0:
		sb.WriteString(m.spin.View() + StyleMeta.Render(" Loading history…") + "\n")
	default:
		sb.WriteString(m.history.View() + "\n")
	}

	// ── Status ────────────────────────────────────────────────────────────
	sb.WriteString("\n")
	switch {
	case m.approval != nil:
		t, body := promptText(m.approval.req)
		sb.WriteString(StyleDialog.Render(
			StyleWarning.Render(t)+"\n"+body+"\n\n"+StyleMeta.Render("[ y ] approve   [ n ] reject"),
		) + "\n")
	case m.confirmReset:
		sb.WriteString(StyleDialog.Render(
			StyleError.Render("Reset count and clear all messages on-chain?")+"\n\n"+StyleMeta.Render("[ y ] reset   [ n ] cancel"),
		) + "\n")
	case m.busy == "increment" || m.busy == "reset" || st.Pending():
		sb.WriteString(m.spin.View() + StyleWarning.Render(" Waiting for confirmation…") + "\n")
	case m.notice != "" && m.noticeErr:
		sb.WriteString(StyleError.Render("  ✗ "+m.notice) + "\n")
	case m.notice != "":
		sb.WriteString(StyleSuccess.Render("  ✓ "+m.notice) + "\n")
	default:
		sb.WriteString("\n")
	}

	sb.WriteString("\n" + m.controls())
	return sb.String()
}

// renderHistory lays out entries newest first.
func renderHistory(entries []dapp.Entry, width int) string {
	if len(entries) == 0 {
		return StyleMeta.Render("  No messages yet. Be the first!")
	}
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		msg := e.Message
		if width > 8 && len([]rune(msg)) > width-4 {
			msg = string([]rune(msg)[:width-5]) + "…"
		}
		sb.WriteString("  " + StyleValue.Render(msg) + "\n")
		sb.WriteString("  " + StyleMeta.Render("by ") + StyleAddress.Render(dapp.ShortAddr(e.Sender)) +
			StyleMeta.Render("  ·  "+e.Timestamp.Format(timeLayout)) + "\n")
	}
	return sb.String()
}

func (m Model) controls() string {
	sep := StyleMeta.Render("   ")
	key := func(k, label string) string {
		return StyleInfo.Render("[ "+k+" ]") + StyleMeta.Render(" "+label)
	}

	var parts []string
	switch {
	case !m.state.Connected():
		parts = []string{key("c", "connect"), key("o", "explorer"), key("y", "copy address"), key("q", "quit")}
	case m.input.Focused():
		parts = []string{key("enter", "increment"), key("esc", "leave input"), key("ctrl+c", "quit")}
	default:
		parts = []string{key("i", "type"), key("r", "reset"), key("ctrl+r", "refresh"), key("o", "explorer"), key("t", "last tx"), key("y", "copy address")}
		if m.opts.Disconnect != nil {
			parts = append(parts, key("x", "disconnect"))
		}
		parts = append(parts, key("q", "quit"))
	}
	return strings.Join(parts, sep) + "\n"
}
