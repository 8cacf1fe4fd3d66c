// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

// Package postgres implements the credential store on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/lightgate/lightgate/internal/auth"
)

// Querier is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CredentialRepository implements auth.CredentialStore using PostgreSQL.
type CredentialRepository struct {
	db Querier
}

// NewCredentialRepository creates a new CredentialRepository.
func NewCredentialRepository(db Querier) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// allowedColumns guards UpdateColumn against interpolating anything but the
// known column names into SQL.
var allowedColumns = map[auth.CredentialColumn]struct{}{
	auth.ColumnPassword:    {},
	auth.ColumnSalt:        {},
	auth.ColumnEmail:       {},
	auth.ColumnLastLogin:   {},
	auth.ColumnLastAddress: {},
}

// Search retrieves the row for an identity.
func (r *CredentialRepository) Search(ctx context.Context, id uuid.UUID) (*auth.Credential, error) {
	row := r.db.QueryRow(ctx, `
		SELECT identity, password_hash, password_salt, email,
		       last_login, last_ipv4, created_at, updated_at
		FROM credentials
		WHERE identity = $1
	`, id.String())

	cred, err := scanCredential(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CREDENTIAL_NOT_FOUND").
			With("identity", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CREDENTIAL_SEARCH_FAILED").
			With("operation", "search credential").
			With("identity", id.String()).
			Wrap(err)
	}
	return cred, nil
}

// Insert stores a new row.
func (r *CredentialRepository) Insert(ctx context.Context, cred *auth.Credential) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO credentials (
			identity, password_hash, password_salt, email,
			last_login, last_ipv4, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		cred.Identity.String(),
		cred.PasswordHash,
		cred.PasswordSalt,
		cred.Email,
		cred.LastLogin,
		cred.LastAddress,
		cred.CreatedAt,
		cred.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("CREDENTIAL_DUPLICATE").
				With("identity", cred.Identity.String()).
				Wrap(auth.ErrAlreadyRegistered)
		}
		return oops.Code("CREDENTIAL_INSERT_FAILED").
			With("operation", "insert credential").
			With("identity", cred.Identity.String()).
			Wrap(err)
	}
	return nil
}

// UpdateColumn mutates a single column of an existing row.
func (r *CredentialRepository) UpdateColumn(ctx context.Context, id uuid.UUID, column auth.CredentialColumn, value any) error {
	if _, ok := allowedColumns[column]; !ok {
		return oops.Code("CREDENTIAL_BAD_COLUMN").
			With("column", string(column)).
			Errorf("unknown credential column %q", column)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE credentials SET `+string(column)+` = $2, updated_at = $3 WHERE identity = $1`,
		id.String(), value, time.Now(),
	)
	if err != nil {
		return oops.Code("CREDENTIAL_UPDATE_FAILED").
			With("operation", "update credential column").
			With("column", string(column)).
			With("identity", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CREDENTIAL_NOT_FOUND").
			With("identity", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// Delete removes the row.
func (r *CredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM credentials WHERE identity = $1
	`, id.String())
	if err != nil {
		return oops.Code("CREDENTIAL_DELETE_FAILED").
			With("operation", "delete credential").
			With("identity", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CREDENTIAL_NOT_FOUND").
			With("identity", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// scanCredential scans a single row into a Credential.
// Callers are responsible for handling pgx.ErrNoRows.
func scanCredential(row pgx.Row) (*auth.Credential, error) {
	var (
		idStr       string
		hash        string
		salt        string
		email       *string
		lastLogin   int64
		lastAddress int64
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(&idStr, &hash, &salt, &email, &lastLogin, &lastAddress, &createdAt, &updatedAt)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("CREDENTIAL_SCAN_FAILED").
			With("operation", "scan credential").
			Wrap(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("CREDENTIAL_INVALID_ID").
			With("identity", idStr).
			Wrap(err)
	}

	return &auth.Credential{
		Identity:     id,
		PasswordHash: hash,
		PasswordSalt: salt,
		Email:        email,
		LastLogin:    lastLogin,
		LastAddress:  lastAddress,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// Compile-time interface check.
var _ auth.CredentialStore = (*CredentialRepository)(nil)
