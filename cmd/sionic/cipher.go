package main

import (
	"fmt"

	"github.com/pzverkov/sionic/internal/constants"
)

func parseCipherSuite(s string) (constants.CipherSuite, error) {
	switch s {
	case "aes-gcm", "aes256gcm", "":
		return constants.CipherSuiteAES256GCM, nil
	case "chacha20", "chacha20poly1305":
		return constants.CipherSuiteChaCha20Poly1305, nil
	default:
		return 0, fmt.Errorf("unknown cipher suite %q (use aes-gcm or chacha20)", s)
	}
}
