// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lightgate Contributors

package auth

import "net/netip"

// PackAddr converts an IPv4 address into its big-endian integer form, the
// representation stored in the credential row. Non-IPv4 addresses (including
// IPv6) pack their low 4 bytes when 4-in-6 mapped, otherwise zero.
func PackAddr(addr netip.Addr) int64 {
	if addr.Is4In6() {
		addr = addr.Unmap()
	}
	if !addr.Is4() {
		return 0
	}
	b := addr.As4()
	var v int64
	for _, octet := range b {
		v = v<<8 | int64(octet)
	}
	return v
}
