// Package token is the asset-ledger service: it tracks mints (token unit
// identities) and holdings (per-owner balances of one mint) as ledger
// accounts.
//
// Every operation runs inside a caller-supplied ledger.Tx, so a multi-step
// sequence commits or aborts with the enclosing unit.
package token

import (
	"encoding/json"
	"errors"
	"fmt"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/authority"
	"xdao.co/mintverify/ledger"
)

// Account owner tags.
const (
	OwnerMint    = "token/mint"
	OwnerHolding = "token/holding"
)

// holdingTag is the derivation tag for holding addresses.
const holdingTag = "holding"

var (
	ErrNotMint               = errors.New("token: account is not a mint")
	ErrNotHolding            = errors.New("token: account is not a holding")
	ErrWrongMint             = errors.New("token: holding belongs to a different mint")
	ErrMintAuthorityMismatch = errors.New("token: mint authority mismatch")
)

// Mint is a token unit identity.
type Mint struct {
	Decimals        uint8        `json:"decimals"`
	Supply          uint64       `json:"supply"`
	MintAuthority   addr.Address `json:"mintAuthority"`
	FreezeAuthority addr.Address `json:"freezeAuthority"`
}

// Holding tracks one owner's balance of one mint.
type Holding struct {
	Mint   addr.Address `json:"mint"`
	Owner  addr.Address `json:"owner"`
	Amount uint64       `json:"amount"`
}

// CreateMint allocates a new mint account at mintAddr, charging payer.
//
// Fails with ledger.ErrAddressInUse when mintAddr was already allocated; this
// is the ledger's uniqueness guarantee duplicate issuance relies on.
func CreateMint(tx ledger.Tx, payer, mintAddr addr.Address, decimals uint8, mintAuth, freezeAuth addr.Address) error {
	data, err := json.Marshal(Mint{
		Decimals:        decimals,
		MintAuthority:   mintAuth,
		FreezeAuthority: freezeAuth,
	})
	if err != nil {
		return fmt.Errorf("token: encode mint: %w", err)
	}
	return ledger.Allocate(tx, payer, ledger.Account{
		Address: mintAddr,
		Owner:   OwnerMint,
		Data:    data,
	})
}

// GetMint loads the mint at a.
func GetMint(tx ledger.Tx, a addr.Address) (Mint, error) {
	acct, err := tx.Get(a)
	if err != nil {
		return Mint{}, err
	}
	if acct.Owner != OwnerMint {
		return Mint{}, ErrNotMint
	}
	var m Mint
	if err := json.Unmarshal(acct.Data, &m); err != nil {
		return Mint{}, fmt.Errorf("token: decode mint: %w", err)
	}
	return m, nil
}

func putMint(tx ledger.Tx, a addr.Address, m Mint) error {
	acct, err := tx.Get(a)
	if err != nil {
		return err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("token: encode mint: %w", err)
	}
	acct.Data = data
	return tx.Put(acct)
}

// HoldingAddress derives the deterministic holding address for (mint, owner).
func HoldingAddress(mint, owner addr.Address) (addr.Address, error) {
	seed := make([]byte, 0, 2*addr.Size)
	seed = append(seed, mint[:]...)
	seed = append(seed, owner[:]...)
	a, _, err := authority.Derive(holdingTag, seed)
	return a, err
}

// CreateHolding allocates the holding account for (mint, owner), charging
// payer, and returns its address.
func CreateHolding(tx ledger.Tx, payer, mint, owner addr.Address) (addr.Address, error) {
	if _, err := GetMint(tx, mint); err != nil {
		return addr.Zero, err
	}
	holdingAddr, err := HoldingAddress(mint, owner)
	if err != nil {
		return addr.Zero, err
	}
	data, err := json.Marshal(Holding{Mint: mint, Owner: owner})
	if err != nil {
		return addr.Zero, fmt.Errorf("token: encode holding: %w", err)
	}
	err = ledger.Allocate(tx, payer, ledger.Account{
		Address: holdingAddr,
		Owner:   OwnerHolding,
		Data:    data,
	})
	if err != nil {
		return addr.Zero, err
	}
	return holdingAddr, nil
}

// GetHolding loads the holding at a.
func GetHolding(tx ledger.Tx, a addr.Address) (Holding, error) {
	acct, err := tx.Get(a)
	if err != nil {
		return Holding{}, err
	}
	if acct.Owner != OwnerHolding {
		return Holding{}, ErrNotHolding
	}
	var h Holding
	if err := json.Unmarshal(acct.Data, &h); err != nil {
		return Holding{}, fmt.Errorf("token: decode holding: %w", err)
	}
	return h, nil
}

// MintTo issues amount units of mint into the holding at dest.
//
// auth must equal the mint's current mint authority.
func MintTo(tx ledger.Tx, mint, dest, auth addr.Address, amount uint64) error {
	m, err := GetMint(tx, mint)
	if err != nil {
		return err
	}
	if auth != m.MintAuthority {
		return ErrMintAuthorityMismatch
	}
	h, err := GetHolding(tx, dest)
	if err != nil {
		return err
	}
	if h.Mint != mint {
		return ErrWrongMint
	}

	m.Supply += amount
	if err := putMint(tx, mint, m); err != nil {
		return err
	}
	h.Amount += amount
	acct, err := tx.Get(dest)
	if err != nil {
		return err
	}
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("token: encode holding: %w", err)
	}
	acct.Data = data
	return tx.Put(acct)
}

// SetMintAuthority rotates the mint authority. current must match the stored
// authority.
func SetMintAuthority(tx ledger.Tx, mint, current, next addr.Address) error {
	m, err := GetMint(tx, mint)
	if err != nil {
		return err
	}
	if current != m.MintAuthority {
		return ErrMintAuthorityMismatch
	}
	m.MintAuthority = next
	return putMint(tx, mint, m)
}
