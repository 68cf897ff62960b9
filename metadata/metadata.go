// Package metadata is the descriptive-registry service: it binds a
// descriptive record (name, symbol, content URI, royalty, creators,
// collection reference) to a token mint, seals records as non-reissuable
// master editions, and verifies collection membership.
//
// Record and edition addresses are derived deterministically from the mint,
// so a mint has exactly one record and one edition slot.
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/authority"
	"xdao.co/mintverify/ledger"
	"xdao.co/mintverify/token"
)

// Field limits, enforced on registration.
const (
	MaxNameLength           = 32
	MaxSymbolLength         = 10
	MaxURILength            = 200
	MaxSellerFeeBasisPoints = 10_000
)

// Account owner tags.
const (
	OwnerRecord  = "metadata/record"
	OwnerEdition = "metadata/edition"
)

// Derivation tags for record and edition addresses.
const (
	recordTag  = "metadata"
	editionTag = "edition"
)

var (
	// ErrInvalidData wraps every field-limit violation.
	ErrInvalidData = errors.New("metadata: invalid record data")

	ErrNotRecord          = errors.New("metadata: account is not a record")
	ErrNotEdition         = errors.New("metadata: account is not an edition")
	ErrImmutable          = errors.New("metadata: record is sealed or immutable")
	ErrUnauthorized       = errors.New("metadata: signer is not authorized")
	ErrNoCollection       = errors.New("metadata: record has no collection reference")
	ErrCollectionMismatch = errors.New("metadata: collection reference does not match")
	ErrAuthorityMismatch  = errors.New("metadata: authority does not match collection update authority")
	ErrSupplyNotOne       = errors.New("metadata: mint supply must be exactly 1 to seal")
)

// Creator is one entry of a record's creator list.
type Creator struct {
	Address  addr.Address `json:"address"`
	Verified bool         `json:"verified"`
	Share    uint8        `json:"share"`
}

// CollectionRef points a record at its collection's mint.
type CollectionRef struct {
	Key      addr.Address `json:"key"`
	Verified bool         `json:"verified"`
}

// Data is the caller-supplied portion of a record.
type Data struct {
	Name                 string         `json:"name"`
	Symbol               string         `json:"symbol"`
	URI                  string         `json:"uri"`
	SellerFeeBasisPoints uint16         `json:"sellerFeeBasisPoints"`
	Creators             []Creator      `json:"creators,omitempty"`
	Collection           *CollectionRef `json:"collection,omitempty"`
}

// Record is a stored descriptive record.
type Record struct {
	Mint            addr.Address `json:"mint"`
	UpdateAuthority addr.Address `json:"updateAuthority"`
	IsMutable       bool         `json:"isMutable"`
	Data
}

// MasterEdition marks a record as non-reissuable.
type MasterEdition struct {
	Mint      addr.Address `json:"mint"`
	MaxSupply uint64       `json:"maxSupply"`
}

// RecordAddress derives the record address for mint.
func RecordAddress(mint addr.Address) (addr.Address, error) {
	a, _, err := authority.Derive(recordTag, mint[:])
	return a, err
}

// EditionAddress derives the master edition address for mint.
func EditionAddress(mint addr.Address) (addr.Address, error) {
	a, _, err := authority.Derive(editionTag, mint[:])
	return a, err
}

// ValidateData enforces the registry's field limits.
func ValidateData(d Data) error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidData)
	}
	if len(d.Name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidData, MaxNameLength)
	}
	if len(d.Symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: symbol exceeds %d bytes", ErrInvalidData, MaxSymbolLength)
	}
	if err := ValidateURI(d.URI); err != nil {
		return err
	}
	if d.SellerFeeBasisPoints > MaxSellerFeeBasisPoints {
		return fmt.Errorf("%w: seller fee exceeds %d basis points", ErrInvalidData, MaxSellerFeeBasisPoints)
	}
	if len(d.Creators) > 0 {
		var total int
		for _, c := range d.Creators {
			if c.Address.IsZero() {
				return fmt.Errorf("%w: creator address is zero", ErrInvalidData)
			}
			total += int(c.Share)
		}
		if total != 100 {
			return fmt.Errorf("%w: creator shares must total 100", ErrInvalidData)
		}
	}
	return nil
}

// RegisterParams describes a record registration.
//
// UpdateAuthorityIsSigner records whether the update authority itself signed;
// when false the registry accepts the payer's signature at creation time only.
// This is what lets a record be created under a derived authority that can
// never sign.
type RegisterParams struct {
	Mint                    addr.Address
	MintAuthority           addr.Address
	Payer                   addr.Address
	UpdateAuthority         addr.Address
	Data                    Data
	IsMutable               bool
	UpdateAuthorityIsSigner bool
}

// Register validates p and allocates the record account, charging the payer.
// Returns the record address.
func Register(tx ledger.Tx, p RegisterParams) (addr.Address, error) {
	if err := ValidateData(p.Data); err != nil {
		return addr.Zero, err
	}
	mint, err := token.GetMint(tx, p.Mint)
	if err != nil {
		return addr.Zero, err
	}
	if p.MintAuthority != mint.MintAuthority {
		return addr.Zero, ErrUnauthorized
	}

	recordAddr, err := RecordAddress(p.Mint)
	if err != nil {
		return addr.Zero, err
	}
	data, err := json.Marshal(Record{
		Mint:            p.Mint,
		UpdateAuthority: p.UpdateAuthority,
		IsMutable:       p.IsMutable,
		Data:            p.Data,
	})
	if err != nil {
		return addr.Zero, fmt.Errorf("metadata: encode record: %w", err)
	}
	err = ledger.Allocate(tx, p.Payer, ledger.Account{
		Address: recordAddr,
		Owner:   OwnerRecord,
		Data:    data,
	})
	if err != nil {
		return addr.Zero, err
	}
	return recordAddr, nil
}

// Get loads the record at recordAddr.
func Get(tx ledger.Tx, recordAddr addr.Address) (Record, error) {
	acct, err := tx.Get(recordAddr)
	if err != nil {
		return Record{}, err
	}
	if acct.Owner != OwnerRecord {
		return Record{}, ErrNotRecord
	}
	var r Record
	if err := json.Unmarshal(acct.Data, &r); err != nil {
		return Record{}, fmt.Errorf("metadata: decode record: %w", err)
	}
	return r, nil
}

func put(tx ledger.Tx, recordAddr addr.Address, r Record) error {
	acct, err := tx.Get(recordAddr)
	if err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("metadata: encode record: %w", err)
	}
	acct.Data = data
	return tx.Put(acct)
}

// UpdateParams describes an update to a record's caller-supplied data.
type UpdateParams struct {
	Record    addr.Address
	Authority addr.Address
	Data      Data
}

// Update replaces a record's data.
//
// Sealed records reject changes to their core identity fields (name, symbol)
// regardless of IsMutable; records marked immutable reject all updates.
func Update(tx ledger.Tx, p UpdateParams) error {
	if err := ValidateData(p.Data); err != nil {
		return err
	}
	r, err := Get(tx, p.Record)
	if err != nil {
		return err
	}
	if p.Authority != r.UpdateAuthority {
		return ErrUnauthorized
	}
	if !r.IsMutable {
		return ErrImmutable
	}
	sealed, err := isSealed(tx, r.Mint)
	if err != nil {
		return err
	}
	if sealed && (p.Data.Name != r.Name || p.Data.Symbol != r.Symbol) {
		return ErrImmutable
	}
	r.Data = p.Data
	return put(tx, p.Record, r)
}
