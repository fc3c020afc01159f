// aead.go implements the narrow Authenticated Encryption with Associated
// Data capability the streaming channel is built on.
//
// This package supports two AEAD algorithms:
//   - AES-256-GCM: FIPS-approved, hardware-accelerated on modern CPUs
//   - ChaCha20-Poly1305: high performance without hardware support
//
// Both are exposed behind the same Algorithm interface, which is
// deliberately narrow: seal-in-place and open-in-place over a fixed
// 12-byte nonce, with no nonce management or AAD policy of its own — that
// lives one layer up, in pkg/stream.
//
// CRITICAL: nonce reuse under the same key completely breaks security.
// Algorithm implementations here never generate or track nonces
// themselves; Counter (counter.go) is the only nonce source and it is
// built to emit each of its 2^32 values at most once per channel.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/pzverkov/sionic/internal/constants"
	sioerrors "github.com/pzverkov/sionic/internal/errors"
)

// Algorithm is the capability the streaming channel consumes: seal and
// open a single AEAD fragment in place, over a fixed-size key, nonce, and
// tag. Implementations must not reveal any plaintext on an
// authentication failure.
type Algorithm interface {
	// SealInPlace encrypts inOut and appends a TagLen-byte tag, returning
	// the resulting ciphertext. inOut's backing array must have at least
	// TagLen bytes of spare capacity beyond its length.
	SealInPlace(nonce [constants.NonceLen]byte, aad, inOut []byte) ([]byte, error)

	// OpenInPlace verifies the TagLen-byte tag at the end of inOut and
	// decrypts the remainder in place, returning the plaintext. Returns
	// sioerrors.ErrNotAuthentic (wrapped) on tag mismatch.
	OpenInPlace(nonce [constants.NonceLen]byte, aad, inOut []byte) ([]byte, error)

	// Overhead returns the tag size in bytes (always constants.TagLen).
	Overhead() int
}

// aeadAlgorithm adapts a stdlib/x-crypto cipher.AEAD to Algorithm.
type aeadAlgorithm struct {
	aead cipher.AEAD
}

// NewAlgorithm constructs the Algorithm for the given cipher suite and
// 32-byte key.
func NewAlgorithm(suite constants.CipherSuite, key []byte) (Algorithm, error) {
	if len(key) != constants.KeyLen {
		return nil, sioerrors.NewConstructError("key", sioerrors.ErrInvalidKeySize)
	}

	switch suite {
	case constants.CipherSuiteAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, sioerrors.NewConstructError("key", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, sioerrors.NewConstructError("key", err)
		}
		return &aeadAlgorithm{aead: gcm}, nil

	case constants.CipherSuiteChaCha20Poly1305:
		if err := requireNotFIPSRestricted(suite); err != nil {
			return nil, err
		}
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, sioerrors.NewConstructError("key", err)
		}
		return &aeadAlgorithm{aead: aead}, nil

	default:
		return nil, sioerrors.NewConstructError("cipherSuite", sioerrors.ErrUnsupportedCipherSuite)
	}
}

func (a *aeadAlgorithm) SealInPlace(nonce [constants.NonceLen]byte, aad, inOut []byte) ([]byte, error) {
	if cap(inOut)-len(inOut) < constants.TagLen {
		return nil, sioerrors.NewStreamError("seal", sioerrors.ErrInvalidBufferSize)
	}
	return a.aead.Seal(inOut[:0], nonce[:], inOut, aad), nil
}

func (a *aeadAlgorithm) OpenInPlace(nonce [constants.NonceLen]byte, aad, inOut []byte) ([]byte, error) {
	if len(inOut) < constants.TagLen {
		return nil, sioerrors.NewStreamError("open", sioerrors.ErrCiphertextTooShort)
	}
	plaintext, err := a.aead.Open(inOut[:0], nonce[:], inOut, aad)
	if err != nil {
		return nil, sioerrors.NewStreamError("open", sioerrors.ErrNotAuthentic)
	}
	return plaintext, nil
}

func (a *aeadAlgorithm) Overhead() int {
	return a.aead.Overhead()
}
