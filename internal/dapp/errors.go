package dapp

import (
	"errors"
	"fmt"
)

// Errors surfaced by App operations. Every failure is reported at the action
// boundary; none of them leaves the loading flags set.
var (
	ErrLoadFailed        = errors.New("could not load contract data")
	ErrTransactionFailed = errors.New("transaction failed")
	ErrValidationFailed  = errors.New("invalid request")

	ErrNotConnected = fmt.Errorf("%w: wallet not connected", ErrValidationFailed)
	ErrBusy         = fmt.Errorf("%w: a transaction is already pending", ErrValidationFailed)
	ErrEmptyMessage = fmt.Errorf("%w: please enter a message", ErrValidationFailed)
	ErrNotConfirmed = fmt.Errorf("%w: reset was not confirmed", ErrValidationFailed)
)
