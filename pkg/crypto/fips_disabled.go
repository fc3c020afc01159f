//go:build !fips
// +build !fips

// Package crypto implements the AEAD primitives sionic's streaming
// channel is built on.
//
// This file is compiled when the "fips" build tag is NOT specified. In
// standard mode, all supported algorithms are available.
package crypto

import "github.com/pzverkov/sionic/internal/constants"

// FIPSMode reports whether the binary was built in FIPS mode. When
// false, all supported algorithms (AES-256-GCM and ChaCha20-Poly1305)
// are available.
func FIPSMode() bool { return false }

func requireNotFIPSRestricted(suite constants.CipherSuite) error {
	return nil
}
