package metadata

import (
	"encoding/json"
	"fmt"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/ledger"
	"xdao.co/mintverify/token"
)

// SealParams describes sealing a record as a non-reissuable master edition.
type SealParams struct {
	Mint            addr.Address
	UpdateAuthority addr.Address
	MintAuthority   addr.Address
	Payer           addr.Address
	MaxSupply       uint64
}

// Seal allocates the master edition account for p.Mint and moves the mint
// authority onto the edition address, so no further units of the mint can
// ever be issued.
//
// The mint's supply must be exactly 1 and its record must already exist.
func Seal(tx ledger.Tx, p SealParams) (addr.Address, error) {
	mint, err := token.GetMint(tx, p.Mint)
	if err != nil {
		return addr.Zero, err
	}
	if p.MintAuthority != mint.MintAuthority {
		return addr.Zero, ErrUnauthorized
	}
	if mint.Supply != 1 {
		return addr.Zero, ErrSupplyNotOne
	}

	recordAddr, err := RecordAddress(p.Mint)
	if err != nil {
		return addr.Zero, err
	}
	record, err := Get(tx, recordAddr)
	if err != nil {
		return addr.Zero, err
	}
	if p.UpdateAuthority != record.UpdateAuthority {
		return addr.Zero, ErrUnauthorized
	}

	editionAddr, err := EditionAddress(p.Mint)
	if err != nil {
		return addr.Zero, err
	}
	data, err := json.Marshal(MasterEdition{Mint: p.Mint, MaxSupply: p.MaxSupply})
	if err != nil {
		return addr.Zero, fmt.Errorf("metadata: encode edition: %w", err)
	}
	err = ledger.Allocate(tx, p.Payer, ledger.Account{
		Address: editionAddr,
		Owner:   OwnerEdition,
		Data:    data,
	})
	if err != nil {
		return addr.Zero, err
	}
	if err := token.SetMintAuthority(tx, p.Mint, p.MintAuthority, editionAddr); err != nil {
		return addr.Zero, err
	}
	return editionAddr, nil
}

// GetEdition loads the master edition at editionAddr.
func GetEdition(tx ledger.Tx, editionAddr addr.Address) (MasterEdition, error) {
	acct, err := tx.Get(editionAddr)
	if err != nil {
		return MasterEdition{}, err
	}
	if acct.Owner != OwnerEdition {
		return MasterEdition{}, ErrNotEdition
	}
	var e MasterEdition
	if err := json.Unmarshal(acct.Data, &e); err != nil {
		return MasterEdition{}, fmt.Errorf("metadata: decode edition: %w", err)
	}
	return e, nil
}

// isSealed reports whether mint's edition account exists.
func isSealed(tx ledger.Tx, mint addr.Address) (bool, error) {
	editionAddr, err := EditionAddress(mint)
	if err != nil {
		return false, err
	}
	_, err = tx.Get(editionAddr)
	if ledger.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
