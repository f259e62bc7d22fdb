// Package hash provides password digest implementations behind a small
// interface so the auth service never depends on a concrete algorithm.
package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Hasher produces and verifies password digests.
type Hasher interface {
	// Hash returns the stored form of the password.
	Hash(password string) (string, error)

	// Verify checks the password against a stored digest.
	// Returns (true, nil) on match, (false, nil) on mismatch, or an error
	// when the stored digest is unusable.
	Verify(password, encoded string) (bool, error)
}

// SHA256 digests the UTF-8 password with a single unsalted SHA-256 pass and
// stores it as 64 lowercase hex characters.
//
// This is deliberately weak: no salt, no work factor. It exists for parity
// with the historical on-disk-free behavior of this service. Use Bcrypt for
// anything that outlives a demo.
type SHA256 struct{}

func NewSHA256() SHA256 { return SHA256{} }

func (SHA256) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (SHA256) Verify(password, encoded string) (bool, error) {
	sum := sha256.Sum256([]byte(password))
	computed := hex.EncodeToString(sum[:])

	// Stored digests are hex, so folding case cannot create collisions.
	return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(encoded))) == 1, nil
}
