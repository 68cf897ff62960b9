package wallet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEd25519SignVerify(t *testing.T) {
	kp, err := NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	msg := []byte("collection bootstrap request")

	for _, hashAlg := range []string{"", HashSHA256, HashSHA512, HashSHA3_256} {
		env, err := kp.Sign(msg, hashAlg)
		if err != nil {
			t.Fatalf("Sign(%q): %v", hashAlg, err)
		}
		if err := Verify(env, msg, kp.Address()); err != nil {
			t.Fatalf("Verify(%q): %v", hashAlg, err)
		}
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	kp, err := NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	env, err := kp.Sign([]byte("original"), "")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := Verify(env, []byte("tampered"), kp.Address()); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("got err=%v want ErrSignatureInvalid", err)
	}
}

func TestVerifyRejectsWrongAddress(t *testing.T) {
	kp, err := NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	other, err := NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	env, err := kp.Sign([]byte("message"), "")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := Verify(env, []byte("message"), other.Address()); !errors.Is(err, ErrAddressMismatch) {
		t.Fatalf("got err=%v want ErrAddressMismatch", err)
	}
}

func TestVerifyRejectsUnknownAlgorithms(t *testing.T) {
	kp, err := NewKeypair()
	if err != nil {
		t.Fatalf("NewKeypair: %v", err)
	}
	env, err := kp.Sign([]byte("message"), "")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	env.Alg = "rsa"
	if err := Verify(env, []byte("message"), kp.Address()); err == nil {
		t.Fatalf("unknown signature algorithm accepted")
	}

	if _, err := kp.Sign([]byte("message"), "md5"); err == nil {
		t.Fatalf("unknown hash algorithm accepted")
	}
}

func TestDilithiumSignVerify(t *testing.T) {
	seed := make([]byte, SeedSize)
	for i := range seed {
		seed[i] = byte(255 - i)
	}
	kp, err := DilithiumKeypairFromSeed(seed)
	if err != nil {
		t.Fatalf("DilithiumKeypairFromSeed: %v", err)
	}
	msg := []byte("item issuance request")

	env, err := kp.Sign(msg, HashSHA3_256)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if env.Alg != AlgDilithium3 {
		t.Fatalf("env.Alg = %q", env.Alg)
	}
	if err := Verify(env, msg, kp.Address()); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	env.Signature[0] ^= 1
	if err := Verify(env, msg, kp.Address()); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("got err=%v want ErrSignatureInvalid", err)
	}
}

func TestKeypairFromSeedDeterministic(t *testing.T) {
	seed := make([]byte, SeedSize)
	seed[0] = 42
	a, err := KeypairFromSeed(seed)
	if err != nil {
		t.Fatalf("KeypairFromSeed: %v", err)
	}
	b, err := KeypairFromSeed(seed)
	if err != nil {
		t.Fatalf("KeypairFromSeed: %v", err)
	}
	if a.Address() != b.Address() {
		t.Fatalf("same seed produced different addresses")
	}

	if _, err := KeypairFromSeed(seed[:16]); err == nil {
		t.Fatalf("short seed accepted")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := &Store{Directory: t.TempDir()}

	created, err := store.Init("admin", nil, false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	loaded, err := store.Load("admin")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if created.Address() != loaded.Address() {
		t.Fatalf("loaded key differs from created key")
	}

	info, err := os.Stat(filepath.Join(store.Directory, "admin.key"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("key file mode = %o, want 600", perm)
	}
}

func TestStoreRefusesOverwrite(t *testing.T) {
	store := &Store{Directory: t.TempDir()}
	if _, err := store.Init("admin", nil, false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := store.Init("admin", nil, false); err == nil {
		t.Fatalf("second Init without overwrite succeeded")
	}
	if _, err := store.Init("admin", nil, true); err != nil {
		t.Fatalf("Init with overwrite: %v", err)
	}
}

func TestStoreList(t *testing.T) {
	store := &Store{Directory: t.TempDir()}
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if _, err := store.Init(name, nil, false); err != nil {
			t.Fatalf("Init(%s): %v", name, err)
		}
	}
	names, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"alpha", "bravo", "charlie"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("List = %v, want %v", names, want)
		}
	}
}

func TestCheckName(t *testing.T) {
	for _, name := range []string{"admin", "key-1", "key_2", "A9"} {
		if err := CheckName(name); err != nil {
			t.Fatalf("CheckName(%q): %v", name, err)
		}
	}
	for _, name := range []string{"", "a b", "../escape", "key.pem"} {
		if err := CheckName(name); err == nil {
			t.Fatalf("CheckName(%q) accepted invalid name", name)
		}
	}
}

func TestParseSeedHex(t *testing.T) {
	seed := make([]byte, SeedSize)
	seed[1] = 0xFE
	kp, err := KeypairFromSeed(seed)
	if err != nil {
		t.Fatalf("KeypairFromSeed: %v", err)
	}
	_ = kp

	parsed, err := ParseSeedHex("0x00fe000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("ParseSeedHex: %v", err)
	}
	if parsed[1] != 0xFE {
		t.Fatalf("parsed seed mismatch")
	}

	if _, err := ParseSeedHex("abcd"); err == nil {
		t.Fatalf("short hex accepted")
	}
	if _, err := ParseSeedHex("zz"); err == nil {
		t.Fatalf("invalid hex accepted")
	}
}
