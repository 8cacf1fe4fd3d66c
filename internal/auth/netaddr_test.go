// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lightgate/lightgate/internal/auth"
)

func TestPackAddr(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want int64
	}{
		{"loopback", "127.0.0.1", 0x7F000001},
		{"private", "192.168.1.1", 0xC0A80101},
		{"zero", "0.0.0.0", 0},
		{"broadcast", "255.255.255.255", 0xFFFFFFFF},
		{"4in6 mapped", "::ffff:10.0.0.1", 0x0A000001},
		{"plain ipv6", "2001:db8::1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := netip.MustParseAddr(tt.addr)
			assert.Equal(t, tt.want, auth.PackAddr(addr))
		})
	}
}

func TestPackAddr_ZeroValue(t *testing.T) {
	assert.Equal(t, int64(0), auth.PackAddr(netip.Addr{}))
}
