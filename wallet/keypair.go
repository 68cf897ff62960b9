package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"xdao.co/mintverify/addr"
)

// Supported signature algorithms.
const (
	AlgEd25519    = "ed25519"
	AlgDilithium3 = "dilithium3"
)

// SeedSize is the seed length for both supported algorithms.
const SeedSize = 32

// Signer produces signature envelopes bound to a ledger address.
type Signer interface {
	Address() addr.Address
	Sign(message []byte, hashAlg string) (Envelope, error)
}

// Keypair is an ed25519 signing identity. Its address is the public key.
type Keypair struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// NewKeypair generates a fresh ed25519 keypair from crypto/rand.
func NewKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Keypair{pub: pub, priv: priv}, nil
}

// KeypairFromSeed derives the ed25519 keypair for a 32-byte seed.
func KeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("wallet: seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Keypair{pub: priv.Public().(ed25519.PublicKey), priv: priv}, nil
}

func (k *Keypair) Address() addr.Address {
	a, _ := addr.FromBytes(k.pub)
	return a
}

func (k *Keypair) Sign(message []byte, hashAlg string) (Envelope, error) {
	digest, err := digestFor(hashAlg, message)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Alg:       AlgEd25519,
		HashAlg:   normalizeHashAlg(hashAlg),
		PublicKey: append([]byte(nil), k.pub...),
		Signature: ed25519.Sign(k.priv, digest),
	}, nil
}

// DilithiumKeypair is a dilithium3 signing identity. Its address is
// sha256 of the public key.
type DilithiumKeypair struct {
	pub  *mode3.PublicKey
	priv *mode3.PrivateKey
}

// NewDilithiumKeypair generates a fresh dilithium3 keypair.
func NewDilithiumKeypair(rng io.Reader) (*DilithiumKeypair, error) {
	if rng == nil {
		rng = rand.Reader
	}
	pub, priv, err := mode3.GenerateKey(rng)
	if err != nil {
		return nil, err
	}
	return &DilithiumKeypair{pub: pub, priv: priv}, nil
}

// DilithiumKeypairFromSeed derives the dilithium3 keypair for a 32-byte seed.
func DilithiumKeypairFromSeed(seed []byte) (*DilithiumKeypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("wallet: seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	var s [mode3.SeedSize]byte
	copy(s[:], seed)
	pub, priv := mode3.NewKeyFromSeed(&s)
	return &DilithiumKeypair{pub: pub, priv: priv}, nil
}

func (k *DilithiumKeypair) Address() addr.Address {
	sum := sha256.Sum256(k.pub.Bytes())
	a, _ := addr.FromBytes(sum[:])
	return a
}

func (k *DilithiumKeypair) Sign(message []byte, hashAlg string) (Envelope, error) {
	digest, err := digestFor(hashAlg, message)
	if err != nil {
		return Envelope{}, err
	}
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(k.priv, digest, sig)
	return Envelope{
		Alg:       AlgDilithium3,
		HashAlg:   normalizeHashAlg(hashAlg),
		PublicKey: k.pub.Bytes(),
		Signature: sig,
	}, nil
}
