// Package sionic provides a length-preserving, streaming authenticated
// encryption channel built on AES-256-GCM or ChaCha20-Poly1305, with
// optional post-quantum hybrid key agreement.
//
// Sionic splits plaintext into fixed-size fragments and seals each one
// independently under a nonce derived from an 8-byte random prefix and a
// monotonically increasing 32-bit sequence number, so the resulting
// ciphertext is always exactly as long as the plaintext plus one
// authentication tag per fragment; the 17-byte derived header is only
// associated data and is never written out. It never buffers the whole
// stream in memory.
//
// # Quick Start
//
// Encrypting a stream:
//
//	import "github.com/pzverkov/sionic/pkg/stream"
//
//	key := make([]byte, 32)       // from a key exchange or KDF
//	nonce := make([]byte, 8)      // unique per key, never reused
//	w, err := stream.NewEncWriter(dst, key, nonce, nil, stream.WithCipherSuite(constants.CipherSuiteAES256GCM))
//	if err != nil {
//		// handle error
//	}
//	if _, err := w.Write(plaintext); err != nil {
//		// handle error
//	}
//	if err := w.Close(); err != nil {
//		// handle error
//	}
//
// Decrypting a stream. DecWriter is itself a sink: ciphertext is written
// in, plaintext comes out the other side as each fragment is verified:
//
//	r, err := stream.NewDecWriter(plaintextDst, key, nonce, nil)
//	if err != nil {
//		// handle error
//	}
//	if _, err := r.Write(ciphertext); err != nil {
//		// handle error
//	}
//	if err := r.Close(); err != nil {
//		// handle error
//	}
//
// For post-quantum hybrid key agreement to produce the (key, nonce) pair
// a channel is constructed from:
//
//	import "github.com/pzverkov/sionic/pkg/keyexchange"
//
//	keyPair, _ := keyexchange.GenerateKeyPair()
//	ciphertext, sharedSecret, _ := keyexchange.Encapsulate(keyPair.PublicKey())
//	key, nonce, _ := keyexchange.ChannelKeyNonce(sharedSecret)
//
// # Package Structure
//
// The library is organized into several packages:
//
//   - pkg/stream: Streaming encrypting/decrypting sinks built on the AEAD primitive
//   - pkg/keyexchange: Hybrid (X25519 + ML-KEM-1024) key encapsulation API
//   - pkg/crypto: Low-level cryptographic primitives (ML-KEM, X25519, KDF, AEAD)
//   - pkg/metrics: Observability primitives (metrics, tracing, logging, health)
//   - internal/constants: Security parameters and protocol constants
//   - internal/errors: Custom error types for detailed error handling
//
// # Security Properties
//
//   - Authenticated encryption: AES-256-GCM or ChaCha20-Poly1305 per fragment
//   - Length preservation: ciphertext length == plaintext length + one 16-byte tag per fragment
//   - Fragment reordering and truncation detection via the sequence counter
//     and a terminal marker byte in the derived AAD header
//   - Optional post-quantum security: ML-KEM-1024 (NIST Category 5) combined
//     with X25519 ECDH, secure if either algorithm is secure
//
// # Testing
//
// The library includes comprehensive tests:
//
//	go test ./...                                  # All tests
//	go test -fuzz=FuzzDecWriterWrite ./test/fuzz/  # Fuzz tests
//	go test -run TestKAT ./pkg/crypto               # Known Answer Tests
//	go test -bench=. ./test/benchmark               # Benchmarks
//
// # References
//
//   - NIST FIPS 203: Module-Lattice-Based Key-Encapsulation Mechanism Standard
//   - RFC 7748: Elliptic Curves for Security
//   - NIST FIPS 202: SHA-3 Standard (SHAKE-256)
//   - age's STREAM construction and secure-io/sio for the streaming AEAD design
package sionic
