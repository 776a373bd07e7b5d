// Package auth provides password hashing and bearer-token utilities.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
)

// saltLength is the size of the random per-password salt. The salt doubles
// as the HMAC key, so it matches the SHA-512 block-friendly output size.
const saltLength = 64

// CreateHash generates a fresh random salt and computes a keyed hash of the
// password using the salt as the HMAC-SHA-512 key. The salt is independent
// of the password and unique per call.
func CreateHash(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil), salt, nil
}

// VerifyHash recomputes the keyed hash of password with the given salt and
// compares it against hash in constant time. A mismatched length or any
// differing byte is a verification failure, never an error.
func VerifyHash(password string, hash, salt []byte) bool {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	computed := mac.Sum(nil)

	return subtle.ConstantTimeCompare(computed, hash) == 1
}
