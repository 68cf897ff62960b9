// Package mintverify issues collection items with automatic membership
// verification.
//
// A collection is bootstrapped once: its marker unit is minted to an
// administrator and its descriptive record is registered under a derived
// authority (see the authority package) and sealed. Items are then issued
// repeatedly: each issuance creates the item unit, registers and seals its
// record, and re-derives the collection authority to attest membership — all
// inside one ledger unit of work, so a partially-issued, unverified item can
// never exist in steady state.
package mintverify
