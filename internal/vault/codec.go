package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// Blob layout: [1 byte version][12 byte nonce][ciphertext || GCM tag].
// The version byte keeps future algorithm changes readable.
const blobVersion = 1

// Encrypt seals plaintext with AES-256-GCM under the session key.
func Encrypt(key *Key, plaintext []byte) ([]byte, error) {
	if key == nil || len(key.raw) == 0 {
		return nil, ErrLocked
	}

	block, err := aes.NewCipher(key.raw)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	blob := make([]byte, 1, 1+len(nonce)+len(plaintext)+gcm.Overhead())
	blob[0] = blobVersion
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, plaintext, nil)
	return blob, nil
}

// Decrypt opens a blob produced by Encrypt. A wrong key and a tampered blob
// are deliberately indistinguishable: both return ErrDecryptionFailed.
func Decrypt(key *Key, blob []byte) ([]byte, error) {
	if key == nil || len(key.raw) == 0 {
		return nil, ErrLocked
	}
	if len(blob) < 1 || blob[0] != blobVersion {
		return nil, ErrDecryptionFailed
	}

	block, err := aes.NewCipher(key.raw)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	rest := blob[1:]
	if len(rest) < gcm.NonceSize() {
		return nil, ErrDecryptionFailed
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
