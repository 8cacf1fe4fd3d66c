// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CredentialColumn names a mutable field of a credential row.
type CredentialColumn string

// Columns accepted by CredentialStore.UpdateColumn.
const (
	ColumnPassword    CredentialColumn = "password_hash"
	ColumnSalt        CredentialColumn = "password_salt"
	ColumnEmail       CredentialColumn = "email"
	ColumnLastLogin   CredentialColumn = "last_login"
	ColumnLastAddress CredentialColumn = "last_ipv4"
)

// Credential is the persisted record of a registered player. One row per
// identity, keyed by the player UUID. Rows are never cached beyond a single
// request cycle; the store owns them.
type Credential struct {
	Identity     uuid.UUID
	PasswordHash string // base64 of the raw argon2id output
	PasswordSalt string // base64 of the salt bytes
	Email        *string
	LastLogin    int64 // epoch millis of the last successful login
	LastAddress  int64 // IPv4 packed big-endian into an integer
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCredential creates a credential row for a freshly registered player.
func NewCredential(id uuid.UUID, passwordHash, passwordSalt string, address int64) *Credential {
	now := time.Now()
	return &Credential{
		Identity:     id,
		PasswordHash: passwordHash,
		PasswordSalt: passwordSalt,
		LastLogin:    now.UnixMilli(),
		LastAddress:  address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CredentialStore manages credential persistence.
//
// Methods are synchronous and context-aware; callers that must not block the
// game loop run them on background goroutines and apply results to the
// session registry when they resolve. Search returns ErrNotFound (wrapped)
// for unregistered identities.
type CredentialStore interface {
	// Search retrieves the row for an identity.
	Search(ctx context.Context, id uuid.UUID) (*Credential, error)

	// Insert stores a new row. Duplicate identities fail with
	// ErrAlreadyRegistered (wrapped).
	Insert(ctx context.Context, row *Credential) error

	// UpdateColumn mutates a single column of an existing row.
	UpdateColumn(ctx context.Context, id uuid.UUID, column CredentialColumn, value any) error

	// Delete removes the row. Returns ErrNotFound (wrapped) if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
