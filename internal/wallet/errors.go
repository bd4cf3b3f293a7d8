package wallet

import "errors"

// Errors.
var (
	// ErrWalletUnavailable means no signing wallet can serve the session:
	// none is configured or its key cannot be read.
	ErrWalletUnavailable = errors.New("wallet unavailable")
	// ErrUserRejected means the user declined a connect or signature prompt.
	ErrUserRejected = errors.New("user rejected the request")
	// ErrNoActiveAccount is returned by Signer before a successful connect.
	ErrNoActiveAccount = errors.New("no active account")

	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
	ErrInvalidKey     = errors.New("invalid private key")
)
