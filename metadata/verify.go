package metadata

import (
	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/ledger"
)

// VerifyParams describes a collection-membership verification.
//
// The caller supplies the item record plus the collection's mint, record, and
// sealed edition; the registry checks them against its own derivations rather
// than trusting the caller's addressing.
type VerifyParams struct {
	Record            addr.Address
	Authority         addr.Address
	CollectionMint    addr.Address
	CollectionRecord  addr.Address
	CollectionEdition addr.Address
}

// VerifyMembership durably flips the item record's collection-reference
// verified flag.
//
// It succeeds only when:
// - the item record carries a collection reference to p.CollectionMint,
// - the collection record and sealed edition exist at their derived addresses,
// - p.Authority equals the collection record's stored update authority.
//
// No other identity can produce a valid membership attestation.
func VerifyMembership(tx ledger.Tx, p VerifyParams) error {
	item, err := Get(tx, p.Record)
	if err != nil {
		return err
	}
	if item.Collection == nil {
		return ErrNoCollection
	}
	if item.Collection.Key != p.CollectionMint {
		return ErrCollectionMismatch
	}

	wantRecord, err := RecordAddress(p.CollectionMint)
	if err != nil {
		return err
	}
	if p.CollectionRecord != wantRecord {
		return ErrCollectionMismatch
	}
	collection, err := Get(tx, p.CollectionRecord)
	if err != nil {
		return err
	}
	if collection.Mint != p.CollectionMint {
		return ErrCollectionMismatch
	}

	wantEdition, err := EditionAddress(p.CollectionMint)
	if err != nil {
		return err
	}
	if p.CollectionEdition != wantEdition {
		return ErrCollectionMismatch
	}
	edition, err := GetEdition(tx, p.CollectionEdition)
	if err != nil {
		return err
	}
	if edition.Mint != p.CollectionMint {
		return ErrCollectionMismatch
	}

	if p.Authority != collection.UpdateAuthority {
		return ErrAuthorityMismatch
	}

	item.Collection.Verified = true
	return put(tx, p.Record, item)
}
