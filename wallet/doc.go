// Package wallet provides signing identities for ledger operations.
//
// Features:
// - Ed25519 keys derived from 32-byte seeds
// - Dilithium3 (post-quantum) keys derived from the same seed size
// - Detached signature envelopes carrying alg, hash alg, public key, signature
// - A simple filesystem seed store (0600 key files under one directory)
//
// Address binding: an ed25519 identity's address is its raw public key; a
// dilithium3 identity's address is sha256 of its public key (the key itself
// is too large to be an address and travels in the envelope instead).
package wallet
