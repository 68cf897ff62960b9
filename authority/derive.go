// Package authority implements deterministic derivation of program-controlled
// signing identities.
//
// A derived authority is an address computed from a fixed domain tag and a
// caller-chosen seed. The derivation searches bump values descending from 255
// and accepts the first candidate that does NOT decode as an ed25519 curve
// point, so the resulting address can never correspond to a conventional
// private key. Authorization then reduces to a pure recomputation: a presented
// identity is the authority for (tag, seed) iff Derive(tag, seed) returns it.
//
// The derivation is offline and deterministic: identical inputs always yield
// the identical address and bump.
package authority

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"

	"xdao.co/mintverify/addr"
)

// CollectionAuthorityTag is the domain tag for collection authorities.
const CollectionAuthorityTag = "collection_authority"

// MaxSeedLength bounds the caller-chosen seed.
const MaxSeedLength = 32

// marker domain-separates derived addresses from every other sha256 use in
// this module. Changing it changes every derived address.
const marker = "xdao-mintverify-derived-v1"

// ErrSeedTooLong is returned when a seed exceeds MaxSeedLength bytes.
var ErrSeedTooLong = errors.New("authority: seed exceeds 32 bytes")

// ErrNoBump is returned when no bump in [0, 255] yields an off-curve address.
// With sha256 output this is not expected to be reachable in practice.
var ErrNoBump = errors.New("authority: no off-curve address found")

// Derive computes the derived address and bump for (tag, seed).
//
// The candidate for bump b is sha256(tag || 0x00 || seed || b || marker).
// Bumps are searched from 255 downward; the first candidate that is not a
// valid ed25519 point is returned.
func Derive(tag string, seed []byte) (addr.Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		h := sha256.New()
		_, _ = h.Write([]byte(tag))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write(seed)
		_, _ = h.Write([]byte{byte(bump)})
		_, _ = h.Write([]byte(marker))
		sum := h.Sum(nil)

		candidate, err := addr.FromBytes(sum)
		if err != nil {
			return addr.Zero, 0, fmt.Errorf("authority: %w", err)
		}
		if !onCurve(candidate) {
			return candidate, uint8(bump), nil
		}
	}
	return addr.Zero, 0, ErrNoBump
}

// DeriveCollectionAuthority derives the collection authority for seed.
//
// seed must be at most MaxSeedLength bytes; longer seeds fail with
// ErrSeedTooLong.
func DeriveCollectionAuthority(seed string) (addr.Address, uint8, error) {
	if len(seed) > MaxSeedLength {
		return addr.Zero, 0, ErrSeedTooLong
	}
	return Derive(CollectionAuthorityTag, []byte(seed))
}

// onCurve reports whether b decodes as a valid ed25519 curve point.
func onCurve(a addr.Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err == nil
}
