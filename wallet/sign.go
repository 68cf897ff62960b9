package wallet

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"golang.org/x/crypto/sha3"

	"xdao.co/mintverify/addr"
)

// Supported hash algorithms. An empty hash alg means sha256.
const (
	HashSHA256   = "sha256"
	HashSHA512   = "sha512"
	HashSHA3_256 = "sha3-256"
)

// Envelope is a detached signature over a message digest.
//
// The public key travels with the signature so verifiers only need the
// signer's ledger address: the envelope is valid for an address iff the
// carried key hashes/binds to that address and the signature verifies.
//
// JSON note: PublicKey and Signature are encoded as base64 by encoding/json.
type Envelope struct {
	Alg       string `json:"alg"`
	HashAlg   string `json:"hashAlg"`
	PublicKey []byte `json:"publicKey"`
	Signature []byte `json:"signature"`
}

// ErrSignatureInvalid is returned when an envelope fails verification.
var ErrSignatureInvalid = errors.New("wallet: signature invalid")

// ErrAddressMismatch is returned when the envelope's key does not bind to the
// expected address.
var ErrAddressMismatch = errors.New("wallet: public key does not match address")

func normalizeHashAlg(hashAlg string) string {
	if hashAlg == "" {
		return HashSHA256
	}
	return hashAlg
}

func digestFor(hashAlg string, message []byte) ([]byte, error) {
	switch normalizeHashAlg(hashAlg) {
	case HashSHA256:
		s := sha256.Sum256(message)
		return s[:], nil
	case HashSHA512:
		s := sha512.Sum512(message)
		return s[:], nil
	case HashSHA3_256:
		s := sha3.Sum256(message)
		return s[:], nil
	default:
		return nil, fmt.Errorf("wallet: unsupported hash algorithm %q", hashAlg)
	}
}

// AddressOf returns the ledger address bound to a public key.
func AddressOf(alg string, publicKey []byte) (addr.Address, error) {
	switch alg {
	case AlgEd25519:
		if len(publicKey) != ed25519.PublicKeySize {
			return addr.Zero, errors.New("wallet: invalid ed25519 public key length")
		}
		return addr.FromBytes(publicKey)
	case AlgDilithium3:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(publicKey); err != nil {
			return addr.Zero, fmt.Errorf("wallet: invalid dilithium3 public key: %w", err)
		}
		sum := sha256.Sum256(publicKey)
		return addr.FromBytes(sum[:])
	default:
		return addr.Zero, fmt.Errorf("wallet: unsupported algorithm %q", alg)
	}
}

// Verify checks that env is a valid signature over message by the identity at
// want.
//
// Returns ErrAddressMismatch when the carried key belongs to a different
// address and ErrSignatureInvalid when the signature does not verify.
func Verify(env Envelope, message []byte, want addr.Address) error {
	got, err := AddressOf(env.Alg, env.PublicKey)
	if err != nil {
		return err
	}
	if got != want {
		return ErrAddressMismatch
	}

	digest, err := digestFor(env.HashAlg, message)
	if err != nil {
		return err
	}

	switch env.Alg {
	case AlgEd25519:
		if len(env.Signature) != ed25519.SignatureSize {
			return ErrSignatureInvalid
		}
		if !ed25519.Verify(ed25519.PublicKey(env.PublicKey), digest, env.Signature) {
			return ErrSignatureInvalid
		}
		return nil
	case AlgDilithium3:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(env.PublicKey); err != nil {
			return fmt.Errorf("wallet: invalid dilithium3 public key: %w", err)
		}
		if len(env.Signature) != mode3.SignatureSize {
			return ErrSignatureInvalid
		}
		if !mode3.Verify(&pk, digest, env.Signature) {
			return ErrSignatureInvalid
		}
		return nil
	default:
		return fmt.Errorf("wallet: unsupported algorithm %q", env.Alg)
	}
}
