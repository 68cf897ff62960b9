package ledger

import "errors"

var (
	ErrNotFound          = errors.New("ledger: account not found")
	ErrAddressInUse      = errors.New("ledger: address already in use")
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	ErrReadOnly          = errors.New("ledger: read-only transaction")
	ErrZeroAddress       = errors.New("ledger: zero address")
)

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsAddressInUse(err error) bool { return errors.Is(err, ErrAddressInUse) }
