// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightgate/lightgate/internal/auth"
)

func TestArgon2idHasher_Deterministic(t *testing.T) {
	h := auth.NewArgon2idHasher()
	salt, err := h.GenerateSalt(auth.SaltLength)
	require.NoError(t, err)

	first := h.Hash("hunter2", salt)
	second := h.Hash("hunter2", salt)
	assert.Equal(t, first, second, "same password and salt must produce the same hash")
}

func TestArgon2idHasher_SaltChangesHash(t *testing.T) {
	h := auth.NewArgon2idHasher()
	saltA, err := h.GenerateSalt(auth.SaltLength)
	require.NoError(t, err)
	saltB, err := h.GenerateSalt(auth.SaltLength)
	require.NoError(t, err)
	require.NotEqual(t, saltA, saltB)

	assert.NotEqual(t, h.Hash("hunter2", saltA), h.Hash("hunter2", saltB))
}

func TestArgon2idHasher_Verify(t *testing.T) {
	h := auth.NewArgon2idHasher()
	salt, err := h.GenerateSalt(auth.SaltLength)
	require.NoError(t, err)
	encoded := h.Hash("correct horse", salt)

	assert.True(t, h.Verify("correct horse", salt, encoded))
	assert.False(t, h.Verify("wrong horse", salt, encoded))

	otherSalt, err := h.GenerateSalt(auth.SaltLength)
	require.NoError(t, err)
	assert.False(t, h.Verify("correct horse", otherSalt, encoded))
}

func TestArgon2idHasher_VerifyMalformedHash(t *testing.T) {
	h := auth.NewArgon2idHasher()
	salt, err := h.GenerateSalt(auth.SaltLength)
	require.NoError(t, err)

	assert.False(t, h.Verify("anything", salt, "not-base64!!"))
	assert.False(t, h.Verify("anything", salt, ""))
}

func TestArgon2idHasher_GenerateSalt(t *testing.T) {
	h := auth.NewArgon2idHasher()

	salt, err := h.GenerateSalt(auth.SaltLength)
	require.NoError(t, err)
	assert.Len(t, salt, auth.SaltLength)

	other, err := h.GenerateSalt(auth.SaltLength)
	require.NoError(t, err)
	assert.NotEqual(t, salt, other, "salts must be random")
}
