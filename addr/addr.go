// Package addr defines the 32-byte account address used across the ledger,
// registry, and program packages.
//
// Addresses are rendered in base58. A signing identity's address is its
// ed25519 public key; program-derived addresses are sha256 outputs that are
// guaranteed off the ed25519 curve (see the authority package), so no private
// key can ever exist for them.
package addr

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Size is the address length in bytes.
const Size = 32

// Address is a 32-byte account identity.
type Address [Size]byte

// Zero is the all-zero address. It is never a valid account identity.
var Zero Address

// FromBytes copies b into an Address. b must be exactly Size bytes.
func FromBytes(b []byte) (Address, error) {
	if len(b) != Size {
		return Zero, fmt.Errorf("addr: expected %d bytes, got %d", Size, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// Parse decodes a base58 address string.
func Parse(s string) (Address, error) {
	if s == "" {
		return Zero, errors.New("addr: empty address")
	}
	b, err := base58.Decode(s)
	if err != nil {
		return Zero, fmt.Errorf("addr: invalid base58: %w", err)
	}
	return FromBytes(b)
}

// String renders the address in base58.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// IsZero reports whether the address is all zero.
func (a Address) IsZero() bool {
	return a == Zero
}

// Bytes returns a copy of the raw address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, a[:])
	return b
}

// MarshalText implements encoding.TextMarshaler (base58).
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
