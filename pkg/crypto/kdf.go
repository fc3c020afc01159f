// Package crypto implements key derivation functions using SHAKE-256 (SHA-3 XOF).
//
// This file (kdf.go) uses SHAKE-256 (FIPS 202), an extendable-output function (XOF) based on the
// Keccak sponge construction. It provides 256-bit security against collision
// and preimage attacks, and 128-bit security against length-extension attacks.
//
// Mathematical Foundation:
//
// SHAKE-256 uses the Keccak-f[1600] permutation with rate r = 1088 and
// capacity c = 512. The sponge construction:
//
// 1. Absorb: Process message blocks through the permutation
// 2. Squeeze: Extract arbitrary-length output
//
// Security Properties:
//   - 256-bit preimage and collision resistance
//   - Extendable output: can generate arbitrary length keys
//   - No length-extension attacks (unlike SHA-2)
//   - Domain separation prevents key/message confusion
//
// Usage in pkg/keyexchange:
// The KDF combines the classical and post-quantum shared secrets with
// domain separation to derive the channel's (key, nonce) pair:
//
//	K = SHAKE-256(K_x25519 || K_mlkem || transcript_hash || context_info, 256)
package crypto

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/pzverkov/sionic/internal/constants"
	qerrors "github.com/pzverkov/sionic/internal/errors"
)

// DeriveKey derives a key using SHAKE-256 with domain separation.
//
// The derivation follows the construction:
//
//	output = SHAKE-256(
//	    domain_separator_length || domain_separator ||
//	    input_length || input,
//	    output_length
//	)
//
// Length prefixes are 4-byte big-endian integers to ensure unambiguous parsing.
func DeriveKey(domain string, input []byte, outputLen int) ([]byte, error) {
	if outputLen <= 0 || outputLen > 1<<20 { // Max 1MB
		return nil, qerrors.NewStreamError("DeriveKey", qerrors.ErrInvalidKeySize)
	}

	h := sha3.NewShake256()

	domainBytes := []byte(domain)
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(domainBytes)))
	h.Write(lenBuf)
	h.Write(domainBytes)

	binary.BigEndian.PutUint32(lenBuf, uint32(len(input)))
	h.Write(lenBuf)
	h.Write(input)

	output := make([]byte, outputLen)
	_, _ = h.Read(output) // SHAKE256.Read never fails

	return output, nil
}

// DeriveKeyMultiple derives a key from multiple inputs with domain separation.
//
// Used by pkg/keyexchange to combine the X25519 shared secret, the
// ML-KEM shared secret, and a transcript hash into one output.
func DeriveKeyMultiple(domain string, inputs [][]byte, outputLen int) ([]byte, error) {
	if outputLen <= 0 || outputLen > 1<<20 {
		return nil, qerrors.NewStreamError("DeriveKeyMultiple", qerrors.ErrInvalidKeySize)
	}

	h := sha3.NewShake256()
	lenBuf := make([]byte, 4)

	domainBytes := []byte(domain)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(domainBytes)))
	h.Write(lenBuf)
	h.Write(domainBytes)

	binary.BigEndian.PutUint32(lenBuf, uint32(len(inputs)))
	h.Write(lenBuf)

	for _, input := range inputs {
		binary.BigEndian.PutUint32(lenBuf, uint32(len(input)))
		h.Write(lenBuf)
		h.Write(input)
	}

	output := make([]byte, outputLen)
	_, _ = h.Read(output)

	return output, nil
}

// TranscriptHash computes a binding hash over an ordered list of public
// values (public keys, ciphertexts) exchanged during key agreement.
func TranscriptHash(components ...[]byte) []byte {
	h := sha3.New256()
	lenBuf := make([]byte, 4)

	binary.BigEndian.PutUint32(lenBuf, uint32(len(components)))
	h.Write(lenBuf)

	for _, component := range components {
		binary.BigEndian.PutUint32(lenBuf, uint32(len(component)))
		h.Write(lenBuf)
		h.Write(component)
	}

	return h.Sum(nil)
}

// DeriveSharedSecret derives the final shared secret for the hybrid key
// exchange (pkg/keyexchange).
//
//	K_final = SHAKE-256(K_classical || K_pq || transcript_hash, 256 bits)
//
// If EITHER X25519 OR ML-KEM is secure, the output is indistinguishable
// from random; transcript binding prevents man-in-the-middle attacks.
func DeriveSharedSecret(x25519Secret, mlkemSecret, transcriptHash []byte) ([]byte, error) {
	if len(x25519Secret) != constants.X25519SharedSecretSize {
		return nil, qerrors.NewStreamError("DeriveSharedSecret", qerrors.ErrInvalidKeySize)
	}
	if len(mlkemSecret) != constants.MLKEMSharedSecretSize {
		return nil, qerrors.NewStreamError("DeriveSharedSecret", qerrors.ErrInvalidKeySize)
	}

	return DeriveKeyMultiple(
		constants.DomainSeparatorKeyExchange,
		[][]byte{x25519Secret, mlkemSecret, transcriptHash},
		constants.KDFOutputSize,
	)
}

// DeriveChannelKeyNonce derives the (key, nonce) pair pkg/stream needs to
// construct a channel from a hybrid key-exchange shared secret: a
// 32-byte AEAD key followed by an 8-byte nonce prefix.
func DeriveChannelKeyNonce(sharedSecret []byte) (key, nonce []byte, err error) {
	if len(sharedSecret) != constants.KDFOutputSize {
		return nil, nil, qerrors.NewStreamError("DeriveChannelKeyNonce", qerrors.ErrInvalidKeySize)
	}

	material, err := DeriveKey(
		constants.DomainSeparatorChannelKey,
		sharedSecret,
		constants.KeyLen+constants.UserNonceLen,
	)
	if err != nil {
		return nil, nil, err
	}

	return material[:constants.KeyLen], material[constants.KeyLen:], nil
}
