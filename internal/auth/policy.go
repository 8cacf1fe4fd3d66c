// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"strings"

	"github.com/samber/oops"
)

// PasswordPolicy constrains passwords accepted at registration and password
// change. The zero value accepts everything; use DefaultPasswordPolicy for
// sane constraints.
type PasswordPolicy struct {
	MinLength      int
	MaxLength      int
	MinUppercase   int
	MinNumbers     int
	MinSpecial     int
	AllowedSpecial string
}

// DefaultPasswordPolicy mirrors the server's shipped defaults.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:      8,
		MaxLength:      32,
		MinUppercase:   1,
		MinNumbers:     2,
		MinSpecial:     1,
		AllowedSpecial: "!@#$%^&*()-_+=",
	}
}

// Validate checks a password against the policy. Characters outside
// [0-9A-Za-z] and the allowed special set are rejected outright.
func (p PasswordPolicy) Validate(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if p.MinLength > 0 && len(password) < p.MinLength {
		return oops.Code("AUTH_WEAK_PASSWORD").
			With("min_length", p.MinLength).
			Errorf("password must be at least %d characters", p.MinLength)
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		return oops.Code("AUTH_WEAK_PASSWORD").
			With("max_length", p.MaxLength).
			Errorf("password must be at most %d characters", p.MaxLength)
	}

	var upper, digits, special int
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r >= 'a' && r <= 'z':
			// allowed, nothing to count
		case r >= 'A' && r <= 'Z':
			upper++
		case strings.ContainsRune(p.AllowedSpecial, r):
			special++
		default:
			return oops.Code("AUTH_WEAK_PASSWORD").
				With("character", string(r)).
				Errorf("password contains a disallowed character")
		}
	}

	if upper < p.MinUppercase {
		return oops.Code("AUTH_WEAK_PASSWORD").
			With("min_uppercase", p.MinUppercase).
			Errorf("password must contain at least %d uppercase letters", p.MinUppercase)
	}
	if digits < p.MinNumbers {
		return oops.Code("AUTH_WEAK_PASSWORD").
			With("min_numbers", p.MinNumbers).
			Errorf("password must contain at least %d numbers", p.MinNumbers)
	}
	if special < p.MinSpecial {
		return oops.Code("AUTH_WEAK_PASSWORD").
			With("min_special", p.MinSpecial).
			Errorf("password must contain at least %d special characters", p.MinSpecial)
	}
	return nil
}
