// Package constants defines the fixed sizes and identifiers used throughout
// the sionic streaming authenticated-encryption channel.
package constants

// Fragment and buffer sizing. The channel's fragment buffer defaults to
// DefaultBufSize and may be configured up to MaxBufSize; anything outside
// (0, MaxBufSize] is rejected at construction.
const (
	// DefaultBufSize is the default fragment size (B), 16 KiB.
	DefaultBufSize = 1 << 14

	// MaxBufSize is the largest fragment size a channel may be configured
	// with: 2^24 - 1 bytes.
	MaxBufSize = (1 << 24) - 1
)

// AEAD primitive sizes, fixed for both supported algorithms.
const (
	// KeyLen is the AEAD key size in bytes (256-bit keys).
	KeyLen = 32

	// NonceLen is the full per-fragment nonce size fed to the AEAD
	// primitive: an 8-byte user prefix plus a 4-byte little-endian counter.
	NonceLen = 12

	// UserNonceLen is the size of the caller-supplied nonce prefix.
	UserNonceLen = 8

	// TagLen is the AEAD authentication tag size in bytes.
	TagLen = 16

	// HeaderLen is the size of the derived AAD header: one marker byte
	// plus a 16-byte MAC of the user associated data.
	HeaderLen = 1 + TagLen
)

// Derived AAD header marker bytes.
const (
	// MarkerInterior tags every fragment but the last.
	MarkerInterior byte = 0x00

	// MarkerTerminal tags the final fragment of a stream.
	MarkerTerminal byte = 0x80
)

// CipherSuite identifies which AEAD algorithm backs a channel.
type CipherSuite uint16

const (
	// CipherSuiteAES256GCM selects AES-256-GCM.
	CipherSuiteAES256GCM CipherSuite = 0x0001

	// CipherSuiteChaCha20Poly1305 selects ChaCha20-Poly1305.
	CipherSuiteChaCha20Poly1305 CipherSuite = 0x0002
)

// String returns a human-readable name for the cipher suite.
func (cs CipherSuite) String() string {
	switch cs {
	case CipherSuiteAES256GCM:
		return "AES-256-GCM"
	case CipherSuiteChaCha20Poly1305:
		return "ChaCha20-Poly1305"
	default:
		return "Unknown"
	}
}

// IsSupported returns true if the cipher suite is one sionic implements.
func (cs CipherSuite) IsSupported() bool {
	return cs == CipherSuiteAES256GCM || cs == CipherSuiteChaCha20Poly1305
}

// IsFIPSApproved returns true if the cipher suite is FIPS 140-3 approved.
// Only AES-256-GCM is; ChaCha20-Poly1305 is rejected when built with the
// fips build tag (see pkg/crypto/fips_enabled.go).
func (cs CipherSuite) IsFIPSApproved() bool {
	return cs == CipherSuiteAES256GCM
}

// DefaultCipherSuite is used when a channel is constructed without an
// explicit WithCipherSuite option.
const DefaultCipherSuite = CipherSuiteAES256GCM

// Hybrid key-agreement parameters, used only by pkg/keyexchange — the
// core channel (pkg/stream) never references these; callers of
// pkg/stream supply their own (key, nonce) pair.
const (
	// ProtocolName is used for domain separation in key derivation.
	ProtocolName = "sionic-v1"

	// MLKEMPublicKeySize is the size of ML-KEM-1024 encapsulation key in bytes.
	MLKEMPublicKeySize = 1568

	// MLKEMPrivateKeySize is the size of ML-KEM-1024 decapsulation key in bytes.
	MLKEMPrivateKeySize = 3168

	// MLKEMCiphertextSize is the size of ML-KEM-1024 ciphertext in bytes.
	MLKEMCiphertextSize = 1568

	// MLKEMSharedSecretSize is the size of the shared secret from ML-KEM in bytes.
	MLKEMSharedSecretSize = 32

	// X25519PublicKeySize is the size of an X25519 public key in bytes.
	X25519PublicKeySize = 32

	// X25519PrivateKeySize is the size of an X25519 private key in bytes.
	X25519PrivateKeySize = 32

	// X25519SharedSecretSize is the size of the X25519 shared secret in bytes.
	X25519SharedSecretSize = 32

	// KDFOutputSize is the default output size for key derivation in bytes.
	KDFOutputSize = 32

	// DomainSeparatorKeyExchange is used in the hybrid key-agreement's
	// shared-secret derivation.
	DomainSeparatorKeyExchange = "sionic-v1-KeyExchange"

	// DomainSeparatorChannelKey derives the (key, nonce) pair handed to
	// pkg/stream from the hybrid shared secret.
	DomainSeparatorChannelKey = "sionic-v1-ChannelKey"

	// KEMPublicKeySize is the combined size of X25519 + ML-KEM-1024 public keys.
	KEMPublicKeySize = X25519PublicKeySize + MLKEMPublicKeySize

	// KEMCiphertextSize is the combined size of X25519 public + ML-KEM ciphertext.
	KEMCiphertextSize = X25519PublicKeySize + MLKEMCiphertextSize
)
