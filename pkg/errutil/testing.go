// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package errutil

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorCode fails the test unless err is an oops error carrying code.
func AssertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "want an oops error carrying code %q, got %T: %v", code, err, err)
	assert.Equal(t, code, oopsErr.Code())
}

// AssertErrorContext fails the test unless err is an oops error whose context
// holds key with the given value.
func AssertErrorContext(t *testing.T, err error, key string, want any) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "want an oops error with context %q, got %T: %v", key, err, err)
	got, present := oopsErr.Context()[key]
	require.True(t, present, "oops context is missing key %q", key)
	assert.Equal(t, want, got, "oops context %q mismatch", key)
}
