// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import (
	"encoding/base64"

	"github.com/samber/oops"
)

func encodeSalt(salt []byte) string {
	return base64.StdEncoding.EncodeToString(salt)
}

func decodeSalt(encoded string) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, oops.Code("AUTH_BAD_SALT").Wrap(err)
	}
	return salt, nil
}
