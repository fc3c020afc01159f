//go:build fips
// +build fips

// Package crypto implements the AEAD primitives sionic's streaming
// channel is built on.
//
// This file is compiled when the "fips" build tag is specified. In FIPS
// mode, only FIPS 140-3 approved algorithms are available to
// NewAlgorithm.
package crypto

import (
	"github.com/pzverkov/sionic/internal/constants"
	sioerrors "github.com/pzverkov/sionic/internal/errors"
)

// FIPSMode reports whether the binary was built in FIPS mode. When true,
// only AES-256-GCM may be constructed.
func FIPSMode() bool { return true }

func requireNotFIPSRestricted(suite constants.CipherSuite) error {
	if !suite.IsFIPSApproved() {
		return sioerrors.NewConstructError("cipherSuite", sioerrors.ErrUnsupportedCipherSuite)
	}
	return nil
}
