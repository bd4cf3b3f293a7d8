package ui

import "github.com/ethereum/go-ethereum/common"

// connectedMsg reports the end of a connect attempt.
type connectedMsg struct{ err error }

// loadedMsg reports the end of a reload.
type loadedMsg struct{ err error }

// txDoneMsg reports the end of a mutating flow.
type txDoneMsg struct {
	action string
	err    error
}

// accountsChangedMsg carries a wallet account change into the program.
type accountsChangedMsg struct{ account *common.Address }

// noticeMsg sets the status line.
type noticeMsg struct {
	text string
	err  bool
}
