// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightgate/lightgate/internal/auth"
)

var testIdentity = uuid.MustParse("d1f9a0a2-3b58-4c8e-9f0d-6a1b2c3d4e5f")

func credentialRows(id uuid.UUID) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"identity", "password_hash", "password_salt", "email",
		"last_login", "last_ipv4", "created_at", "updated_at",
	}).AddRow(
		id.String(), "hash", "salt", (*string)(nil),
		int64(1700000000000), int64(0x7F000001),
		time.Unix(1700000000, 0), time.Unix(1700000000, 0),
	)
}

func TestCredentialRepository_Search(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      *auth.Credential
		wantErr   error
		errMsg    string
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT identity, password_hash, password_salt, email`).
					WithArgs(testIdentity.String()).
					WillReturnRows(credentialRows(testIdentity))
			},
			want: &auth.Credential{
				Identity:     testIdentity,
				PasswordHash: "hash",
				PasswordSalt: "salt",
				LastLogin:    1700000000000,
				LastAddress:  0x7F000001,
				CreatedAt:    time.Unix(1700000000, 0),
				UpdatedAt:    time.Unix(1700000000, 0),
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT identity, password_hash, password_salt, email`).
					WithArgs(testIdentity.String()).
					WillReturnRows(pgxmock.NewRows([]string{
						"identity", "password_hash", "password_salt", "email",
						"last_login", "last_ipv4", "created_at", "updated_at",
					}))
			},
			wantErr: auth.ErrNotFound,
		},
		{
			name: "query error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT identity, password_hash, password_salt, email`).
					WithArgs(testIdentity.String()).
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
		{
			name: "malformed identity in row",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"identity", "password_hash", "password_salt", "email",
					"last_login", "last_ipv4", "created_at", "updated_at",
				}).AddRow(
					"not-a-uuid", "hash", "salt", (*string)(nil),
					int64(0), int64(0), time.Unix(0, 0), time.Unix(0, 0),
				)
				mock.ExpectQuery(`SELECT identity, password_hash, password_salt, email`).
					WithArgs(testIdentity.String()).
					WillReturnRows(rows)
			},
			errMsg: "invalid UUID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewCredentialRepository(mock)
			got, err := repo.Search(context.Background(), testIdentity)

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestCredentialRepository_Insert(t *testing.T) {
	cred := &auth.Credential{
		Identity:     testIdentity,
		PasswordHash: "hash",
		PasswordSalt: "salt",
		LastLogin:    1700000000000,
		LastAddress:  0x7F000001,
		CreatedAt:    time.Unix(1700000000, 0),
		UpdatedAt:    time.Unix(1700000000, 0),
	}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO credentials`).
					WithArgs(
						cred.Identity.String(), cred.PasswordHash, cred.PasswordSalt,
						cred.Email, cred.LastLogin, cred.LastAddress,
						cred.CreatedAt, cred.UpdatedAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "duplicate identity",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO credentials`).
					WithArgs(
						cred.Identity.String(), cred.PasswordHash, cred.PasswordSalt,
						cred.Email, cred.LastLogin, cred.LastAddress,
						cred.CreatedAt, cred.UpdatedAt,
					).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: auth.ErrAlreadyRegistered,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO credentials`).
					WithArgs(
						cred.Identity.String(), cred.PasswordHash, cred.PasswordSalt,
						cred.Email, cred.LastLogin, cred.LastAddress,
						cred.CreatedAt, cred.UpdatedAt,
					).
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewCredentialRepository(mock)
			err = repo.Insert(context.Background(), cred)

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestCredentialRepository_UpdateColumn(t *testing.T) {
	tests := []struct {
		name      string
		column    auth.CredentialColumn
		value     any
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name:   "successful update",
			column: auth.ColumnEmail,
			value:  "steve@example.com",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE credentials SET email`).
					WithArgs(testIdentity.String(), "steve@example.com", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name:   "unknown column rejected before SQL",
			column: auth.CredentialColumn("identity; DROP TABLE credentials"),
			value:  "x",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				// No expectation: the repository must refuse to build the query.
			},
			errMsg: "unknown credential column",
		},
		{
			name:   "no row updated",
			column: auth.ColumnLastLogin,
			value:  int64(1700000000000),
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE credentials SET last_login`).
					WithArgs(testIdentity.String(), int64(1700000000000), pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: auth.ErrNotFound,
		},
		{
			name:   "database error",
			column: auth.ColumnPassword,
			value:  "newhash",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE credentials SET password`).
					WithArgs(testIdentity.String(), "newhash", pgxmock.AnyArg()).
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewCredentialRepository(mock)
			err = repo.UpdateColumn(context.Background(), testIdentity, tt.column, tt.value)

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestCredentialRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "successful delete",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM credentials WHERE identity`).
					WithArgs(testIdentity.String()).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "no row deleted",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM credentials WHERE identity`).
					WithArgs(testIdentity.String()).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: auth.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM credentials WHERE identity`).
					WithArgs(testIdentity.String()).
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewCredentialRepository(mock)
			err = repo.Delete(context.Background(), testIdentity)

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

