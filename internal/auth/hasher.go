// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

// Package auth provides the authentication gating engine: credential
// contracts, password hashing, the join reconciler, the action gate, the
// auto-kick scheduler, and attempt rate limiting.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters. The salt is stored alongside the hash, so Hash is
// deterministic for a given password and salt.
const (
	argon2Time    = 4
	argon2Memory  = 64 * 1024 // KiB
	argon2Threads = 4
	argon2KeyLen  = 32

	// SaltLength is the salt size in bytes used for new credentials.
	SaltLength = 16
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Errorf("password cannot be empty")

// PasswordHasher hashes and verifies passwords with an externally supplied
// salt. Hash is a pure function: the same password and salt always produce
// the same output.
type PasswordHasher interface {
	// Hash produces the base64-encoded argon2id digest of the password.
	Hash(password string, salt []byte) string

	// GenerateSalt returns n cryptographically random bytes.
	GenerateSalt(n int) ([]byte, error)

	// Verify reports whether the password and salt produce the encoded
	// hash, in constant time.
	Verify(password string, salt []byte, encodedHash string) bool
}

// Argon2idHasher implements PasswordHasher using argon2id.
type Argon2idHasher struct{}

// NewArgon2idHasher creates a new Argon2idHasher.
func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{}
}

// Hash produces the base64-encoded argon2id digest of the password.
func (h *Argon2idHasher) Hash(password string, salt []byte) string {
	digest := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return base64.StdEncoding.EncodeToString(digest)
}

// GenerateSalt returns n cryptographically random bytes.
func (h *Argon2idHasher) GenerateSalt(n int) ([]byte, error) {
	salt := make([]byte, n)
	if _, err := rand.Read(salt); err != nil {
		return nil, oops.Code("AUTH_SALT_FAILED").Wrap(err)
	}
	return salt, nil
}

// Verify reports whether the password and salt produce the encoded hash.
// The comparison is constant time; a malformed encoded hash never matches.
func (h *Argon2idHasher) Verify(password string, salt []byte, encodedHash string) bool {
	expected, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil {
		return false
	}
	digest := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return subtle.ConstantTimeCompare(digest, expected) == 1
}

// Compile-time interface check.
var _ PasswordHasher = (*Argon2idHasher)(nil)
