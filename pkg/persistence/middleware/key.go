package middleware

import (
	"errors"

	"golang.org/x/crypto/argon2"
)

// KeySalt is the default salt for passphrase-derived keys.
// Deployments sharing a store must derive with the same salt.
var KeySalt = []byte("unitconv/session-store/v1")

// DeriveKey stretches a passphrase into a 32-byte AES-256 key with Argon2id.
func DeriveKey(passphrase string, salt []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, errors.New("empty passphrase")
	}
	if len(salt) == 0 {
		salt = KeySalt
	}
	return argon2.IDKey([]byte(passphrase), salt, 1, 64*1024, 4, 32), nil
}
