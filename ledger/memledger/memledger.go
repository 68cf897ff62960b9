// Package memledger is an in-memory ledger.Store.
//
// Updates stage changes in an overlay map and apply them to the base map only
// when the unit function returns nil, so a failed unit leaves the store
// byte-for-byte unchanged. The store is safe for concurrent use; units are
// serialized under one mutex, matching the single-unit-of-work execution
// model.
package memledger

import (
	"context"
	"sync"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/ledger"
)

// Store is an in-memory account store.
type Store struct {
	mu       sync.Mutex
	accounts map[addr.Address]ledger.Account
}

// New returns an empty store.
func New() *Store {
	return &Store{accounts: make(map[addr.Address]ledger.Account)}
}

func (s *Store) Update(ctx context.Context, fn func(ledger.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{base: s.accounts, staged: make(map[addr.Address]ledger.Account)}
	if err := fn(tx); err != nil {
		return err
	}
	for a, acct := range tx.staged {
		s.accounts[a] = acct
	}
	return nil
}

func (s *Store) View(ctx context.Context, fn func(ledger.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&memTx{base: s.accounts, readOnly: true})
}

func (s *Store) Close() error { return nil }

type memTx struct {
	base     map[addr.Address]ledger.Account
	staged   map[addr.Address]ledger.Account
	readOnly bool
}

func (tx *memTx) lookup(a addr.Address) (ledger.Account, bool) {
	if !tx.readOnly {
		if acct, ok := tx.staged[a]; ok {
			return acct, true
		}
	}
	acct, ok := tx.base[a]
	return acct, ok
}

func (tx *memTx) Create(acct ledger.Account) error {
	if tx.readOnly {
		return ledger.ErrReadOnly
	}
	if acct.Address.IsZero() {
		return ledger.ErrZeroAddress
	}
	if _, ok := tx.lookup(acct.Address); ok {
		return ledger.ErrAddressInUse
	}
	tx.staged[acct.Address] = clone(acct)
	return nil
}

func (tx *memTx) Get(a addr.Address) (ledger.Account, error) {
	acct, ok := tx.lookup(a)
	if !ok {
		return ledger.Account{}, ledger.ErrNotFound
	}
	return clone(acct), nil
}

func (tx *memTx) Put(acct ledger.Account) error {
	if tx.readOnly {
		return ledger.ErrReadOnly
	}
	if _, ok := tx.lookup(acct.Address); !ok {
		return ledger.ErrNotFound
	}
	tx.staged[acct.Address] = clone(acct)
	return nil
}

func (tx *memTx) Debit(a addr.Address, amount uint64) error {
	if tx.readOnly {
		return ledger.ErrReadOnly
	}
	acct, ok := tx.lookup(a)
	if !ok {
		return ledger.ErrNotFound
	}
	if acct.Balance < amount {
		return ledger.ErrInsufficientFunds
	}
	acct.Balance -= amount
	tx.staged[a] = clone(acct)
	return nil
}

func (tx *memTx) Credit(a addr.Address, amount uint64) error {
	if tx.readOnly {
		return ledger.ErrReadOnly
	}
	if a.IsZero() {
		return ledger.ErrZeroAddress
	}
	acct, ok := tx.lookup(a)
	if !ok {
		acct = ledger.Account{Address: a, Owner: ledger.OwnerSystem}
	}
	acct.Balance += amount
	tx.staged[a] = clone(acct)
	return nil
}

// clone copies the account so staged state never aliases caller slices.
func clone(acct ledger.Account) ledger.Account {
	if acct.Data != nil {
		acct.Data = append([]byte(nil), acct.Data...)
	}
	return acct
}
