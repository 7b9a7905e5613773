package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"emberwallet/internal/domain"
	"emberwallet/internal/util/memzero"
)

const (
	seedFile  = "wallet.seed"
	saltBytes = 16
)

// ErrSeedExists is returned by Create when a seed file is already
// present; overwriting an existing seed would destroy the wallet.
var ErrSeedExists = errors.New("wallet seed already exists")

// seedEnvelope is the on-disk JSON shape.
type seedEnvelope struct {
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	SeedEnc []byte `json:"seed_enc"`
}

// SeedStore reads and writes the encrypted seed file.
type SeedStore struct {
	dir string
	mu  sync.Mutex
}

// NewSeedStore returns a store rooted at dir.
func NewSeedStore(dir string) *SeedStore { return &SeedStore{dir: dir} }

// Exists reports whether a seed file is present.
func (s *SeedStore) Exists() bool {
	_, err := os.Stat(filepath.Join(s.dir, seedFile))
	return err == nil
}

// Create encrypts seed under passphrase and writes the seed file.
// It refuses to overwrite an existing seed.
func (s *SeedStore) Create(passphrase string, seed []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, seedFile)
	if _, err := os.Stat(path); err == nil {
		return ErrSeedExists
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("%w: unable to draw salt", domain.ErrCrypto)
	}
	kek := deriveKEK(passphrase, salt)
	defer memzero.Zero(kek)

	aead, err := chacha20poly1305.New(kek)
	if err != nil {
		return fmt.Errorf("%w: unable to create key", domain.ErrCrypto)
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("%w: unable to draw nonce", domain.ErrCrypto)
	}

	env := seedEnvelope{
		Salt:    salt,
		Nonce:   nonce,
		SeedEnc: aead.Seal(nil, nonce, seed, nil),
	}
	blob, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: unable to encode seed file", domain.ErrEncoding)
	}
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		return fmt.Errorf("%w: writing seed file: %v", domain.ErrIO, err)
	}
	return nil
}

// Load decrypts and returns the seed. A wrong passphrase and a corrupted
// file are indistinguishable by design.
func (s *SeedStore) Load(passphrase string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(filepath.Join(s.dir, seedFile))
	if err != nil {
		return nil, fmt.Errorf("%w: reading seed file: %v", domain.ErrIO, err)
	}
	var env seedEnvelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("%w: seed file is not valid JSON", domain.ErrEncoding)
	}
	if len(env.Salt) != saltBytes || len(env.Nonce) != chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("%w: malformed seed file", domain.ErrEncoding)
	}

	kek := deriveKEK(passphrase, env.Salt)
	defer memzero.Zero(kek)

	aead, err := chacha20poly1305.New(kek)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create key", domain.ErrCrypto)
	}
	seed, err := aead.Open(nil, env.Nonce, env.SeedEnc, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decryption failed (is key correct?)", domain.ErrCrypto)
	}
	return seed, nil
}

// deriveKEK stretches the passphrase with Argon2id.
func deriveKEK(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, 1, 1<<16, 8, chacha20poly1305.KeySize)
}
