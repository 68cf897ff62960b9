// Package testkit provides a conformance suite for ledger.Store
// implementations.
package testkit

import (
	"context"
	"errors"
	"testing"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/ledger"
)

// NewStore constructs a fresh, empty store for a test.
// The returned store MUST be isolated from other tests.
type NewStore func(t *testing.T) ledger.Store

func testAddr(fill byte) addr.Address {
	var a addr.Address
	for i := range a {
		a[i] = fill
	}
	return a
}

func RunStoreConformance(t *testing.T, newStore NewStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("CreateGetRoundTrip", func(t *testing.T) {
		store := newStore(t)
		want := ledger.Account{
			Address: testAddr(1),
			Owner:   "token/mint",
			Balance: 42,
			Data:    []byte(`{"supply":1}`),
		}
		err := store.Update(ctx, func(tx ledger.Tx) error {
			return tx.Create(want)
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		err = store.View(ctx, func(tx ledger.Tx) error {
			got, err := tx.Get(want.Address)
			if err != nil {
				return err
			}
			if got.Owner != want.Owner || got.Balance != want.Balance || string(got.Data) != string(want.Data) {
				t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View: %v", err)
		}
	})

	t.Run("CreateDuplicateFails", func(t *testing.T) {
		store := newStore(t)
		acct := ledger.Account{Address: testAddr(2), Owner: ledger.OwnerSystem}
		if err := store.Update(ctx, func(tx ledger.Tx) error { return tx.Create(acct) }); err != nil {
			t.Fatalf("Update(1): %v", err)
		}
		err := store.Update(ctx, func(tx ledger.Tx) error { return tx.Create(acct) })
		if !ledger.IsAddressInUse(err) {
			t.Fatalf("got err=%v want ErrAddressInUse", err)
		}
	})

	t.Run("FailedUnitLeavesNothing", func(t *testing.T) {
		store := newStore(t)
		boom := errors.New("boom")
		err := store.Update(ctx, func(tx ledger.Tx) error {
			if err := tx.Create(ledger.Account{Address: testAddr(3), Owner: ledger.OwnerSystem}); err != nil {
				return err
			}
			if err := tx.Credit(testAddr(4), 100); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("got err=%v want boom", err)
		}
		err = store.View(ctx, func(tx ledger.Tx) error {
			if _, err := tx.Get(testAddr(3)); !ledger.IsNotFound(err) {
				t.Fatalf("created account survived aborted unit: err=%v", err)
			}
			if _, err := tx.Get(testAddr(4)); !ledger.IsNotFound(err) {
				t.Fatalf("credited account survived aborted unit: err=%v", err)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View: %v", err)
		}
	})

	t.Run("DebitInsufficientFunds", func(t *testing.T) {
		store := newStore(t)
		payer := testAddr(5)
		if err := store.Update(ctx, func(tx ledger.Tx) error { return tx.Credit(payer, 10) }); err != nil {
			t.Fatalf("Update: %v", err)
		}
		err := store.Update(ctx, func(tx ledger.Tx) error { return tx.Debit(payer, 11) })
		if !errors.Is(err, ledger.ErrInsufficientFunds) {
			t.Fatalf("got err=%v want ErrInsufficientFunds", err)
		}
		err = store.View(ctx, func(tx ledger.Tx) error {
			got, err := tx.Get(payer)
			if err != nil {
				return err
			}
			if got.Balance != 10 {
				t.Fatalf("balance changed by failed debit: %d", got.Balance)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View: %v", err)
		}
	})

	t.Run("CreditCreatesSystemAccount", func(t *testing.T) {
		store := newStore(t)
		a := testAddr(6)
		if err := store.Update(ctx, func(tx ledger.Tx) error { return tx.Credit(a, 500) }); err != nil {
			t.Fatalf("Update: %v", err)
		}
		err := store.View(ctx, func(tx ledger.Tx) error {
			got, err := tx.Get(a)
			if err != nil {
				return err
			}
			if got.Owner != ledger.OwnerSystem || got.Balance != 500 {
				t.Fatalf("unexpected account: %+v", got)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View: %v", err)
		}
	})

	t.Run("ViewRejectsMutation", func(t *testing.T) {
		store := newStore(t)
		err := store.View(ctx, func(tx ledger.Tx) error {
			return tx.Create(ledger.Account{Address: testAddr(7), Owner: ledger.OwnerSystem})
		})
		if !errors.Is(err, ledger.ErrReadOnly) {
			t.Fatalf("got err=%v want ErrReadOnly", err)
		}
	})

	t.Run("AllocateChargesPayer", func(t *testing.T) {
		store := newStore(t)
		payer := testAddr(8)
		acct := ledger.Account{Address: testAddr(9), Owner: "metadata/record", Data: []byte("x")}
		rent := ledger.RentFor(len(acct.Data))

		err := store.Update(ctx, func(tx ledger.Tx) error { return tx.Credit(payer, rent-1) })
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		err = store.Update(ctx, func(tx ledger.Tx) error { return ledger.Allocate(tx, payer, acct) })
		if !errors.Is(err, ledger.ErrInsufficientFunds) {
			t.Fatalf("got err=%v want ErrInsufficientFunds", err)
		}

		if err := store.Update(ctx, func(tx ledger.Tx) error { return tx.Credit(payer, 1) }); err != nil {
			t.Fatalf("Update: %v", err)
		}
		if err := store.Update(ctx, func(tx ledger.Tx) error { return ledger.Allocate(tx, payer, acct) }); err != nil {
			t.Fatalf("Allocate: %v", err)
		}
		err = store.View(ctx, func(tx ledger.Tx) error {
			got, err := tx.Get(acct.Address)
			if err != nil {
				return err
			}
			if got.Balance != rent {
				t.Fatalf("rent deposit mismatch: got %d want %d", got.Balance, rent)
			}
			p, err := tx.Get(payer)
			if err != nil {
				return err
			}
			if p.Balance != 0 {
				t.Fatalf("payer balance not drained: %d", p.Balance)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("View: %v", err)
		}
	})
}
