package vault

import "errors"

var (
	ErrWrongPassword    = errors.New("wrong password")
	ErrLocked           = errors.New("vault is locked")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidMaterial  = errors.New("invalid key material")
)
