package stream

import (
	"bytes"
	"testing"

	"github.com/pzverkov/sionic/internal/constants"
	"github.com/pzverkov/sionic/pkg/crypto"
)

func TestDeriveHeaderLengthAndMarker(t *testing.T) {
	algo, err := crypto.NewAlgorithm(constants.CipherSuiteAES256GCM, make([]byte, 32))
	if err != nil {
		t.Fatalf("NewAlgorithm: %v", err)
	}
	counter, err := crypto.NewCounter(make([]byte, 8))
	if err != nil {
		t.Fatalf("NewCounter: %v", err)
	}

	header, err := deriveHeader(algo, counter, []byte("aad"))
	if err != nil {
		t.Fatalf("deriveHeader: %v", err)
	}
	if len(header) != constants.HeaderLen {
		t.Fatalf("header length = %d, want %d", len(header), constants.HeaderLen)
	}
	if header[0] != constants.MarkerInterior {
		t.Fatalf("header[0] = %#x, want %#x", header[0], constants.MarkerInterior)
	}
}

func TestDeriveHeaderDiffersByAAD(t *testing.T) {
	algo, _ := crypto.NewAlgorithm(constants.CipherSuiteAES256GCM, make([]byte, 32))

	c1, _ := crypto.NewCounter(make([]byte, 8))
	h1, err := deriveHeader(algo, c1, []byte("aad-one"))
	if err != nil {
		t.Fatalf("deriveHeader: %v", err)
	}

	c2, _ := crypto.NewCounter(make([]byte, 8))
	h2, err := deriveHeader(algo, c2, []byte("aad-two"))
	if err != nil {
		t.Fatalf("deriveHeader: %v", err)
	}

	if bytes.Equal(h1, h2) {
		t.Fatal("derived headers for different AAD must differ")
	}
}

func TestDeriveHeaderConsumesCounterZero(t *testing.T) {
	algo, _ := crypto.NewAlgorithm(constants.CipherSuiteAES256GCM, make([]byte, 32))
	counter, _ := crypto.NewCounter(make([]byte, 8))

	if _, err := deriveHeader(algo, counter, nil); err != nil {
		t.Fatalf("deriveHeader: %v", err)
	}

	// The next Next() call must emit sequence 1: bytes 8..12 little-endian.
	nonce, err := counter.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if nonce[8] != 1 || nonce[9] != 0 || nonce[10] != 0 || nonce[11] != 0 {
		t.Fatalf("first fragment nonce sequence bytes = %v, want [1 0 0 0]", nonce[8:])
	}
}
