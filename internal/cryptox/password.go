// Package cryptox derives and verifies password verifiers for stored
// accounts. Passwords are never persisted: an argon2id key is derived from
// the password and a per-account salt, and only its SHA-256 digest is kept.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of generated salts in bytes.
const SaltSize = 16

// GenerateSalt returns SaltSize random bytes.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey derives a 32-byte argon2id key from password and salt.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key into the value stored with the account.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewVerifier generates a fresh salt and the verifier for password.
func NewVerifier(password []byte) (salt, verifier []byte, err error) {
	salt, err = GenerateSalt()
	if err != nil {
		return nil, nil, err
	}
	key := DeriveKey(password, salt)
	defer Wipe(key)
	return salt, MakeVerifier(key), nil
}

// CheckPassword reports whether password matches the stored salt and verifier.
// The comparison runs in constant time.
func CheckPassword(password, salt, verifier []byte) bool {
	key := DeriveKey(password, salt)
	defer Wipe(key)
	return subtle.ConstantTimeCompare(MakeVerifier(key), verifier) == 1
}

// Wipe overwrites b with zeros. A nil slice is ignored.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
