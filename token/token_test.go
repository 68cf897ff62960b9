package token

import (
	"context"
	"errors"
	"testing"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/ledger"
	"xdao.co/mintverify/ledger/memledger"
)

func fill(b byte) addr.Address {
	var a addr.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func fundedTx(t *testing.T, fn func(tx ledger.Tx, payer addr.Address) error) {
	t.Helper()
	store := memledger.New()
	payer := fill(0xAA)
	err := store.Update(context.Background(), func(tx ledger.Tx) error {
		if err := tx.Credit(payer, 1_000_000_000); err != nil {
			return err
		}
		return fn(tx, payer)
	})
	if err != nil {
		t.Fatalf("unit failed: %v", err)
	}
}

func TestCreateMintAndMintTo(t *testing.T) {
	mintAddr := fill(1)
	fundedTx(t, func(tx ledger.Tx, payer addr.Address) error {
		if err := CreateMint(tx, payer, mintAddr, 0, payer, payer); err != nil {
			t.Fatalf("CreateMint: %v", err)
		}
		holding, err := CreateHolding(tx, payer, mintAddr, payer)
		if err != nil {
			t.Fatalf("CreateHolding: %v", err)
		}
		if err := MintTo(tx, mintAddr, holding, payer, 1); err != nil {
			t.Fatalf("MintTo: %v", err)
		}

		m, err := GetMint(tx, mintAddr)
		if err != nil {
			t.Fatalf("GetMint: %v", err)
		}
		if m.Supply != 1 || m.Decimals != 0 {
			t.Fatalf("unexpected mint state: %+v", m)
		}
		h, err := GetHolding(tx, holding)
		if err != nil {
			t.Fatalf("GetHolding: %v", err)
		}
		if h.Amount != 1 || h.Owner != payer {
			t.Fatalf("unexpected holding state: %+v", h)
		}
		return nil
	})
}

func TestMintToRejectsWrongAuthority(t *testing.T) {
	mintAddr := fill(2)
	intruder := fill(3)
	fundedTx(t, func(tx ledger.Tx, payer addr.Address) error {
		if err := CreateMint(tx, payer, mintAddr, 0, payer, payer); err != nil {
			t.Fatalf("CreateMint: %v", err)
		}
		holding, err := CreateHolding(tx, payer, mintAddr, payer)
		if err != nil {
			t.Fatalf("CreateHolding: %v", err)
		}
		if err := MintTo(tx, mintAddr, holding, intruder, 1); !errors.Is(err, ErrMintAuthorityMismatch) {
			t.Fatalf("got err=%v want ErrMintAuthorityMismatch", err)
		}
		return nil
	})
}

func TestCreateMintDuplicateAddress(t *testing.T) {
	mintAddr := fill(4)
	fundedTx(t, func(tx ledger.Tx, payer addr.Address) error {
		if err := CreateMint(tx, payer, mintAddr, 0, payer, payer); err != nil {
			t.Fatalf("CreateMint(1): %v", err)
		}
		if err := CreateMint(tx, payer, mintAddr, 0, payer, payer); !ledger.IsAddressInUse(err) {
			t.Fatalf("got err=%v want ErrAddressInUse", err)
		}
		return nil
	})
}

func TestHoldingAddressDeterministic(t *testing.T) {
	a1, err := HoldingAddress(fill(5), fill(6))
	if err != nil {
		t.Fatalf("HoldingAddress: %v", err)
	}
	a2, err := HoldingAddress(fill(5), fill(6))
	if err != nil {
		t.Fatalf("HoldingAddress: %v", err)
	}
	if a1 != a2 {
		t.Fatalf("expected deterministic holding address")
	}
	a3, err := HoldingAddress(fill(5), fill(7))
	if err != nil {
		t.Fatalf("HoldingAddress: %v", err)
	}
	if a1 == a3 {
		t.Fatalf("expected different owners to derive different holdings")
	}
}

func TestSetMintAuthority(t *testing.T) {
	mintAddr := fill(8)
	next := fill(9)
	fundedTx(t, func(tx ledger.Tx, payer addr.Address) error {
		if err := CreateMint(tx, payer, mintAddr, 0, payer, payer); err != nil {
			t.Fatalf("CreateMint: %v", err)
		}
		if err := SetMintAuthority(tx, mintAddr, next, next); !errors.Is(err, ErrMintAuthorityMismatch) {
			t.Fatalf("got err=%v want ErrMintAuthorityMismatch", err)
		}
		if err := SetMintAuthority(tx, mintAddr, payer, next); err != nil {
			t.Fatalf("SetMintAuthority: %v", err)
		}
		m, err := GetMint(tx, mintAddr)
		if err != nil {
			t.Fatalf("GetMint: %v", err)
		}
		if m.MintAuthority != next {
			t.Fatalf("authority not rotated: %+v", m)
		}
		return nil
	})
}
