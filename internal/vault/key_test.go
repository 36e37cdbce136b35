package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerUnlock(t *testing.T) {
	mat, _, err := NewMaterial("correct-horse")
	require.NoError(t, err)

	m := NewManager()

	_, err = m.Unlock("wrong", mat)
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.True(t, m.IsLocked())

	key, err := m.Unlock("correct-horse", mat)
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.False(t, m.IsLocked())

	current, err := m.CurrentKey()
	require.NoError(t, err)
	assert.Same(t, key, current)
}

func TestManagerLockedByDefault(t *testing.T) {
	m := NewManager()

	_, err := m.CurrentKey()
	assert.ErrorIs(t, err, ErrLocked)
	assert.True(t, m.IsLocked())
}

func TestManagerLock(t *testing.T) {
	mat, _, err := NewMaterial("correct-horse")
	require.NoError(t, err)

	m := NewManager()
	_, err = m.Unlock("correct-horse", mat)
	require.NoError(t, err)

	m.Lock()
	_, err = m.CurrentKey()
	assert.ErrorIs(t, err, ErrLocked)
}

func TestUnlockDerivesSameKey(t *testing.T) {
	mat, key, err := NewMaterial("correct-horse")
	require.NoError(t, err)

	blob, err := Encrypt(key, []byte("Felt good today"))
	require.NoError(t, err)

	// A fresh manager models a new process: the derived key must decrypt
	// data written by the previous session.
	m := NewManager()
	again, err := m.Unlock("correct-horse", mat)
	require.NoError(t, err)

	got, err := Decrypt(again, blob)
	require.NoError(t, err)
	assert.Equal(t, "Felt good today", string(got))
}

func TestUnlockInvalidMaterial(t *testing.T) {
	m := NewManager()

	tests := []struct {
		name string
		mat  Material
	}{
		{"empty", Material{}},
		{"bad salt", Material{Salt: "zz", Seed: "00", Verifier: "00"}},
		{"short verifier", Material{Salt: "00ff", Seed: "00ff", Verifier: "abcd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Unlock("pw", tt.mat)
			assert.ErrorIs(t, err, ErrInvalidMaterial)
		})
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, VerifyPassword(hash, "correct-horse"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "correct-horse"))
}
