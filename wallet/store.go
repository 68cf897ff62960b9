package wallet

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store is a simple local-first seed store.
//
// Seeds are hex-encoded, one per file, under Directory/<name>.key with 0600
// permissions. Names are restricted to [A-Za-z0-9_-].
type Store struct {
	Directory string
}

// DefaultDirectory returns ~/.mintverify/keys.
func DefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".mintverify", "keys"), nil
}

// OpenStore returns a store rooted at directory, falling back to
// DefaultDirectory when directory is empty.
func OpenStore(directory string) (*Store, error) {
	if directory == "" {
		var err error
		directory, err = DefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &Store{Directory: directory}, nil
}

// CheckName validates a key name.
func CheckName(name string) error {
	if name == "" {
		return errors.New("wallet: key name cannot be empty")
	}
	for _, char := range name {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("wallet: invalid character %q in key name", char)
	}
	return nil
}

// ParseSeedHex decodes a 32-byte seed from hex, tolerating a 0x prefix.
func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != SeedSize {
		return nil, fmt.Errorf("wallet: expected seed length of %d bytes, got %d", SeedSize, len(data))
	}
	return data, nil
}

func (s *Store) pathFor(name string) string {
	return filepath.Join(s.Directory, name+".key")
}

// Init writes a seed under name. A nil seed generates a fresh random one.
// Existing keys are only replaced when overwrite is set.
func (s *Store) Init(name string, seed []byte, overwrite bool) (*Keypair, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	if seed == nil {
		seed = make([]byte, SeedSize)
		if _, err := rand.Read(seed); err != nil {
			return nil, err
		}
	}
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("wallet: expected seed length of %d bytes", SeedSize)
	}
	if err := os.MkdirAll(s.Directory, 0o700); err != nil {
		return nil, err
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(s.pathFor(name), flags, 0o600)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if _, err := file.WriteString(hex.EncodeToString(seed) + "\n"); err != nil {
		return nil, err
	}
	if err := file.Close(); err != nil {
		return nil, err
	}
	return KeypairFromSeed(seed)
}

// LoadSeed reads the raw seed stored under name.
func (s *Store) LoadSeed(name string) ([]byte, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.pathFor(name))
	if err != nil {
		return nil, err
	}
	return ParseSeedHex(strings.TrimSpace(string(data)))
}

// Load returns the ed25519 keypair stored under name.
func (s *Store) Load(name string) (*Keypair, error) {
	seed, err := s.LoadSeed(name)
	if err != nil {
		return nil, err
	}
	return KeypairFromSeed(seed)
}

// List returns the stored key names in sorted order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".key") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".key"))
		}
	}
	sort.Strings(names)
	return names, nil
}
