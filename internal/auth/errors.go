// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested credential row does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRegistered is returned when inserting a credential row for an
// identity that already has one.
var ErrAlreadyRegistered = errors.New("already registered")
