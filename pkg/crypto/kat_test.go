// Package crypto provides Known Answer Tests (KATs) for cryptographic primitives.
//
// KATs use pre-computed test vectors to verify that implementations produce
// correct, deterministic outputs. This is critical for:
//   - Compliance verification (NIST, FIPS)
//   - Cross-implementation compatibility
//   - Regression detection after code changes
//   - Validating behavior across different platforms
package crypto_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/pzverkov/sionic/internal/constants"
	"github.com/pzverkov/sionic/pkg/crypto"
)

// --- SHAKE-256 KDF Test Vectors ---

// TestKATDeriveKey verifies SHAKE-256 based key derivation is deterministic
// and produces the requested output length across domains.
func TestKATDeriveKey(t *testing.T) {
	testCases := []struct {
		name      string
		domain    string
		input     string // hex-encoded
		outputLen int
	}{
		{
			name:      "key-exchange domain separator",
			domain:    constants.DomainSeparatorKeyExchange,
			input:     "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff",
			outputLen: 32,
		},
		{
			name:      "channel-key domain separator",
			domain:    constants.DomainSeparatorChannelKey,
			input:     "deadbeefcafebabe0123456789abcdef0123456789abcdef0123456789abcdef",
			outputLen: 40, // KeyLen + UserNonceLen
		},
		{
			name:      "64 byte output",
			domain:    "test-domain",
			input:     "0000000000000000000000000000000000000000000000000000000000000000",
			outputLen: 64,
		},
		{
			name:      "empty input",
			domain:    "empty-test",
			input:     "",
			outputLen: 32,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input, err := hex.DecodeString(tc.input)
			if err != nil {
				t.Fatalf("invalid input hex: %v", err)
			}

			output, err := crypto.DeriveKey(tc.domain, input, tc.outputLen)
			if err != nil {
				t.Fatalf("DeriveKey failed: %v", err)
			}

			if len(output) != tc.outputLen {
				t.Errorf("output length mismatch: got %d, want %d", len(output), tc.outputLen)
			}

			output2, _ := crypto.DeriveKey(tc.domain, input, tc.outputLen)
			if !bytes.Equal(output, output2) {
				t.Error("KDF is not deterministic")
			}

			t.Logf("KAT %s: %s", tc.name, hex.EncodeToString(output))
		})
	}
}

// TestKATDeriveKeyMultiple verifies multi-input KDF.
func TestKATDeriveKeyMultiple(t *testing.T) {
	testCases := []struct {
		name      string
		domain    string
		inputs    []string // hex-encoded
		outputLen int
	}{
		{
			name:   "hybrid shared secret derivation",
			domain: constants.DomainSeparatorKeyExchange,
			inputs: []string{
				"0102030405060708091011121314151617181920212223242526272829303132", // x25519
				"a1a2a3a4a5a6a7a8a9b0b1b2b3b4b5b6b7b8b9c0c1c2c3c4c5c6c7c8c9d0d1d2", // mlkem
				"f1f2f3f4f5f6f7f8f9e0e1e2e3e4e5e6e7e8e9d0d1d2d3d4d5d6d7d8d9c0c1c2", // transcript
			},
			outputLen: 32,
		},
		{
			name:   "single input",
			domain: constants.DomainSeparatorChannelKey,
			inputs: []string{
				"deadbeefcafebabe0123456789abcdef0123456789abcdef0123456789abcdef",
			},
			outputLen: 40,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inputs := make([][]byte, len(tc.inputs))
			for i, h := range tc.inputs {
				var err error
				inputs[i], err = hex.DecodeString(h)
				if err != nil {
					t.Fatalf("invalid input hex: %v", err)
				}
			}

			output, err := crypto.DeriveKeyMultiple(tc.domain, inputs, tc.outputLen)
			if err != nil {
				t.Fatalf("DeriveKeyMultiple failed: %v", err)
			}

			if len(output) != tc.outputLen {
				t.Errorf("output length mismatch: got %d, want %d", len(output), tc.outputLen)
			}

			output2, _ := crypto.DeriveKeyMultiple(tc.domain, inputs, tc.outputLen)
			if !bytes.Equal(output, output2) {
				t.Error("KDF is not deterministic")
			}

			t.Logf("KAT %s: %s", tc.name, hex.EncodeToString(output))
		})
	}
}

// --- Transcript Hash Test Vectors ---

func TestKATTranscriptHash(t *testing.T) {
	testCases := []struct {
		name       string
		components []string // hex-encoded
	}{
		{
			name: "single component",
			components: []string{
				"00112233445566778899aabbccddeeff",
			},
		},
		{
			name: "two components",
			components: []string{
				"00112233445566778899aabbccddeeff",
				"ffeeddccbbaa99887766554433221100",
			},
		},
		{
			name: "simulated exchange transcript",
			components: []string{
				"0102030405060708091011121314151617181920212223242526272829303132",
				"a1a2a3a4a5a6a7a8a9b0b1b2b3b4b5b6b7b8b9c0c1c2c3c4c5c6c7c8c9d0d1d2",
				"f1f2f3f4f5f6f7f8f9e0e1e2e3e4e5e6e7e8e9d0d1d2d3d4d5d6d7d8d9c0c1c2",
				"1111111111111111111111111111111122222222222222222222222222222222",
			},
		},
		{
			name:       "empty components",
			components: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			components := make([][]byte, len(tc.components))
			for i, h := range tc.components {
				var err error
				components[i], err = hex.DecodeString(h)
				if err != nil {
					t.Fatalf("invalid component hex: %v", err)
				}
			}

			hash := crypto.TranscriptHash(components...)

			if len(hash) != 32 {
				t.Errorf("hash length mismatch: got %d, want 32", len(hash))
			}

			hash2 := crypto.TranscriptHash(components...)
			if !bytes.Equal(hash, hash2) {
				t.Error("TranscriptHash is not deterministic")
			}

			t.Logf("KAT %s: %s", tc.name, hex.EncodeToString(hash))
		})
	}
}

// --- AEAD Test Vectors ---

// TestKATAES256GCM verifies AES-256-GCM against a NIST test vector using
// the Algorithm interface directly (bypassing the fragment Counter).
func TestKATAES256GCM(t *testing.T) {
	key, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000000")
	var nonce [constants.NonceLen]byte // all-zero nonce

	algo, err := crypto.NewAlgorithm(constants.CipherSuiteAES256GCM, key)
	if err != nil {
		t.Fatalf("NewAlgorithm failed: %v", err)
	}

	plaintext := make([]byte, 0, constants.TagLen)
	ciphertext, err := algo.SealInPlace(nonce, nil, plaintext)
	if err != nil {
		t.Fatalf("SealInPlace failed: %v", err)
	}
	if len(ciphertext) != constants.TagLen {
		t.Fatalf("ciphertext length = %d, want %d", len(ciphertext), constants.TagLen)
	}

	expectedTag := "530f8afbc74536b9a963b4f1c4cb738b"
	if hex.EncodeToString(ciphertext) != expectedTag {
		// The vector's tag was transcribed from a reference table; a
		// mismatch here means the GCM wiring itself is wrong, not the
		// vector, since it is the all-zero-key/nonce/AAD/plaintext case.
		t.Errorf("tag: got %s, reference %s", hex.EncodeToString(ciphertext), expectedTag)
	}

	decrypted, err := algo.OpenInPlace(nonce, nil, ciphertext)
	if err != nil {
		t.Fatalf("OpenInPlace failed: %v", err)
	}
	if len(decrypted) != 0 {
		t.Errorf("decrypted length = %d, want 0", len(decrypted))
	}
}

// TestKATAEADRoundtrip verifies AEAD encrypt/decrypt roundtrip across both
// supported cipher suites with various plaintext and AAD shapes.
func TestKATAEADRoundtrip(t *testing.T) {
	suites := []constants.CipherSuite{
		constants.CipherSuiteAES256GCM,
		constants.CipherSuiteChaCha20Poly1305,
	}

	key, _ := hex.DecodeString("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

	testCases := []struct {
		name      string
		plaintext string
		aad       string
	}{
		{"small", "48656c6c6f", ""},
		{"with aad", "48656c6c6f", "6164646974696f6e616c"},
		{"single byte", "00", ""},
		{"empty", "", ""},
	}

	for _, suite := range suites {
		for _, tc := range testCases {
			name := suite.String() + "/" + tc.name
			t.Run(name, func(t *testing.T) {
				algo, err := crypto.NewAlgorithm(suite, key)
				if err != nil {
					t.Fatalf("NewAlgorithm failed: %v", err)
				}

				plaintext, _ := hex.DecodeString(tc.plaintext)
				aad, _ := hex.DecodeString(tc.aad)

				var nonce [constants.NonceLen]byte
				nonce[0] = 0x42

				buf := make([]byte, len(plaintext), len(plaintext)+constants.TagLen)
				copy(buf, plaintext)

				ciphertext, err := algo.SealInPlace(nonce, aad, buf)
				if err != nil {
					t.Fatalf("SealInPlace failed: %v", err)
				}

				decrypted, err := algo.OpenInPlace(nonce, aad, ciphertext)
				if err != nil {
					t.Fatalf("OpenInPlace failed: %v", err)
				}

				if !bytes.Equal(decrypted, plaintext) {
					t.Error("roundtrip failed: plaintext mismatch")
				}
			})
		}
	}
}

// --- X25519 Test Vectors ---

// TestKATX25519 verifies the X25519 Diffie-Hellman operation produces
// matching shared secrets for both parties.
func TestKATX25519(t *testing.T) {
	kp1, err := crypto.GenerateX25519KeyPair()
	if err != nil {
		t.Fatalf("GenerateX25519KeyPair failed: %v", err)
	}
	kp2, err := crypto.GenerateX25519KeyPair()
	if err != nil {
		t.Fatalf("GenerateX25519KeyPair failed: %v", err)
	}

	secret1, err := crypto.X25519(kp1.PrivateKey, kp2.PublicKey)
	if err != nil {
		t.Fatalf("X25519 failed: %v", err)
	}

	secret2, err := crypto.X25519(kp2.PrivateKey, kp1.PublicKey)
	if err != nil {
		t.Fatalf("X25519 failed: %v", err)
	}

	if !bytes.Equal(secret1, secret2) {
		t.Error("X25519 shared secrets don't match")
	}

	if len(secret1) != 32 {
		t.Errorf("shared secret length: got %d, want 32", len(secret1))
	}

	t.Logf("Generated shared secret: %s", hex.EncodeToString(secret1))
}

// --- Hybrid Shared Secret Determinism Test ---

// TestDeriveSharedSecretDeterministic verifies that the hybrid shared
// secret derivation is deterministic for fixed inputs.
func TestDeriveSharedSecretDeterministic(t *testing.T) {
	x25519Secret, _ := hex.DecodeString("0102030405060708091011121314151617181920212223242526272829303132")
	mlkemSecret, _ := hex.DecodeString("a1a2a3a4a5a6a7a8a9b0b1b2b3b4b5b6b7b8b9c0c1c2c3c4c5c6c7c8c9d0d1d2")
	transcriptHash, _ := hex.DecodeString("f1f2f3f4f5f6f7f8f9e0e1e2e3e4e5e6e7e8e9d0d1d2d3d4d5d6d7d8d9c0c1c2")

	var results [][]byte
	for i := 0; i < 5; i++ {
		secret, err := crypto.DeriveSharedSecret(x25519Secret, mlkemSecret, transcriptHash)
		if err != nil {
			t.Fatalf("DeriveSharedSecret failed: %v", err)
		}
		results = append(results, secret)
	}

	for i := 1; i < len(results); i++ {
		if !bytes.Equal(results[0], results[i]) {
			t.Errorf("derivation %d differs from derivation 0", i)
		}
	}

	t.Logf("derived shared secret: %s", hex.EncodeToString(results[0]))
}

// TestDeriveChannelKeyNonce verifies the (key, nonce) split handed to
// pkg/stream is deterministic and correctly sized.
func TestDeriveChannelKeyNonce(t *testing.T) {
	sharedSecret, _ := hex.DecodeString("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

	key, nonce, err := crypto.DeriveChannelKeyNonce(sharedSecret)
	if err != nil {
		t.Fatalf("DeriveChannelKeyNonce failed: %v", err)
	}

	if len(key) != constants.KeyLen {
		t.Errorf("key length = %d, want %d", len(key), constants.KeyLen)
	}
	if len(nonce) != constants.UserNonceLen {
		t.Errorf("nonce length = %d, want %d", len(nonce), constants.UserNonceLen)
	}

	key2, nonce2, _ := crypto.DeriveChannelKeyNonce(sharedSecret)
	if !bytes.Equal(key, key2) || !bytes.Equal(nonce, nonce2) {
		t.Error("DeriveChannelKeyNonce is not deterministic")
	}
}

// --- Zeroization Test ---

func TestZeroization(t *testing.T) {
	secret := make([]byte, 32)
	for i := range secret {
		secret[i] = byte(i + 1)
	}

	allZero := true
	for _, b := range secret {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatal("secret should not be zero initially")
	}

	crypto.Zeroize(secret)

	for i, b := range secret {
		if b != 0 {
			t.Errorf("byte %d not zeroed: got %d", i, b)
		}
	}
}

func TestZeroizeMultiple(t *testing.T) {
	buf1 := []byte{1, 2, 3, 4, 5}
	buf2 := []byte{6, 7, 8, 9, 10}
	buf3 := []byte{11, 12, 13}

	crypto.ZeroizeMultiple(buf1, buf2, buf3)

	for i, b := range buf1 {
		if b != 0 {
			t.Errorf("buf1[%d] not zeroed", i)
		}
	}
	for i, b := range buf2 {
		if b != 0 {
			t.Errorf("buf2[%d] not zeroed", i)
		}
	}
	for i, b := range buf3 {
		if b != 0 {
			t.Errorf("buf3[%d] not zeroed", i)
		}
	}
}
