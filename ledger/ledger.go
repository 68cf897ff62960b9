// Package ledger defines the account store every other service runs on.
//
// Contract:
// - Accounts are keyed by address; an address can be created exactly once.
// - Update runs fn inside one unit of work. All staged changes commit iff fn
//   returns nil; any error discards every staged change. This is the
//   atomic-commit boundary the program relies on: a multi-step operation
//   either lands whole or leaves nothing behind.
// - Creating an account charges the payer rent (see Allocate); a payer that
//   cannot cover rent fails the unit before anything is written.
// - View runs fn against a read-only snapshot; mutation methods fail with
//   ErrReadOnly.
package ledger

import (
	"context"

	"xdao.co/mintverify/addr"
)

// Account is one ledger record.
//
// Owner names the service that controls Data ("system", "token/mint",
// "token/holding", "metadata/record", "metadata/edition"). Data holds the
// owning service's JSON-encoded record.
type Account struct {
	Address addr.Address `json:"address"`
	Owner   string       `json:"owner"`
	Balance uint64       `json:"balance"`
	Data    []byte       `json:"data,omitempty"`
}

// OwnerSystem marks plain balance-holding accounts.
const OwnerSystem = "system"

// Tx is one unit of work against the store.
type Tx interface {
	// Create inserts a new account. Fails with ErrAddressInUse when the
	// address is already allocated.
	Create(acct Account) error

	// Get returns the account at a, or ErrNotFound.
	Get(a addr.Address) (Account, error)

	// Put replaces an existing account. Fails with ErrNotFound when the
	// address was never created.
	Put(acct Account) error

	// Debit subtracts amount from the account's balance. Fails with
	// ErrInsufficientFunds when the balance cannot cover it, or ErrNotFound
	// when the account does not exist.
	Debit(a addr.Address, amount uint64) error

	// Credit adds amount to the account's balance, creating a system-owned
	// account when the address does not exist yet.
	Credit(a addr.Address, amount uint64) error
}

// Store is an account store with all-or-nothing commit semantics.
type Store interface {
	Update(ctx context.Context, fn func(Tx) error) error
	View(ctx context.Context, fn func(Tx) error) error
	Close() error
}

// Rent parameters. Allocated rent is deposited into the new account's
// balance, so creation moves funds rather than destroying them.
const (
	RentBase    uint64 = 1_000_000
	RentPerByte uint64 = 5_000
)

// RentFor returns the rent charged for an account holding dataLen bytes.
func RentFor(dataLen int) uint64 {
	return RentBase + RentPerByte*uint64(dataLen)
}

// Allocate creates acct and charges the payer rent for it.
//
// The payer is debited before the account is created, so an underfunded payer
// aborts the unit without allocating anything. acct.Balance is overwritten
// with the rent deposit.
func Allocate(tx Tx, payer addr.Address, acct Account) error {
	rent := RentFor(len(acct.Data))
	if err := tx.Debit(payer, rent); err != nil {
		return err
	}
	acct.Balance = rent
	return tx.Create(acct)
}
