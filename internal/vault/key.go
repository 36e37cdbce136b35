package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

const (
	keyLen  = 32 // AES-256
	saltLen = 16
	seedLen = 32

	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 4
)

// Material is the key-derivation material persisted in the config document.
// It never contains the password or the derived key itself.
type Material struct {
	Salt     string `json:"salt"`     // hex encoded Argon2 salt
	Seed     string `json:"seed"`     // hex encoded HKDF seed
	Verifier string `json:"verifier"` // hex encoded SHA-256 of the derived key
}

// Key is an unlocked session key. It lives only in process memory and is
// handed to operations that need to encrypt or decrypt entry bodies.
type Key struct {
	raw []byte
}

func (k *Key) zero() {
	for i := range k.raw {
		k.raw[i] = 0
	}
	k.raw = nil
}

// Manager derives and caches the session key for the current process.
type Manager struct {
	mu  sync.RWMutex
	key *Key
}

func NewManager() *Manager {
	return &Manager{}
}

// NewMaterial generates fresh salt and seed for a new password, derives the
// key once to record its verifier, and returns both. Called when the password
// is set or changed.
func NewMaterial(password string) (Material, *Key, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return Material{}, nil, fmt.Errorf("generating salt: %w", err)
	}
	seed := make([]byte, seedLen)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return Material{}, nil, fmt.Errorf("generating seed: %w", err)
	}

	key, err := derive(password, salt, seed)
	if err != nil {
		return Material{}, nil, err
	}

	verifier := sha256.Sum256(key.raw)
	mat := Material{
		Salt:     hex.EncodeToString(salt),
		Seed:     hex.EncodeToString(seed),
		Verifier: hex.EncodeToString(verifier[:]),
	}
	return mat, key, nil
}

// Unlock derives the session key from the password and the stored material.
// The derived key is checked against the stored verifier before any journal
// data is touched, so a wrong password fails fast with ErrWrongPassword.
func (m *Manager) Unlock(password string, mat Material) (*Key, error) {
	salt, err := hex.DecodeString(mat.Salt)
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: salt", ErrInvalidMaterial)
	}
	seed, err := hex.DecodeString(mat.Seed)
	if err != nil || len(seed) == 0 {
		return nil, fmt.Errorf("%w: seed", ErrInvalidMaterial)
	}
	verifier, err := hex.DecodeString(mat.Verifier)
	if err != nil || len(verifier) != sha256.Size {
		return nil, fmt.Errorf("%w: verifier", ErrInvalidMaterial)
	}

	key, err := derive(password, salt, seed)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(key.raw)
	if subtle.ConstantTimeCompare(sum[:], verifier) != 1 {
		key.zero()
		return nil, ErrWrongPassword
	}

	m.mu.Lock()
	if m.key != nil {
		m.key.zero()
	}
	m.key = key
	m.mu.Unlock()

	return key, nil
}

// CurrentKey returns the cached session key, or ErrLocked if no successful
// Unlock has happened in this process.
func (m *Manager) CurrentKey() (*Key, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.key == nil {
		return nil, ErrLocked
	}
	return m.key, nil
}

// Lock wipes the cached key. Subsequent CurrentKey calls fail with ErrLocked
// until the next Unlock.
func (m *Manager) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.key != nil {
		m.key.zero()
		m.key = nil
	}
}

// IsLocked reports whether no session key is cached.
func (m *Manager) IsLocked() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key == nil
}

// derive stretches the password with Argon2id and expands the result through
// HKDF-SHA256 keyed by the stored seed, so the on-disk material alone is not
// enough to reconstruct the key.
func derive(password string, salt, seed []byte) (*Key, error) {
	ikm := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keyLen)

	raw := make([]byte, keyLen)
	r := hkdf.New(sha256.New, ikm, seed, []byte("daybook entry key v1"))
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("expanding key: %w", err)
	}
	for i := range ikm {
		ikm[i] = 0
	}
	return &Key{raw: raw}, nil
}
