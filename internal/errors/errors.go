// Package errors defines the sentinel errors and wrapper types used across
// sionic. Errors are grouped by the taxonomy the streaming channel
// reports in: construction-time misuse, authentication failure, counter
// exhaustion, and errors latched from a downstream sink.
package errors

import (
	"errors"
	"fmt"
)

// Construction-time ("Invalid") sentinel errors.
var (
	// ErrInvalidKeySize indicates a key of the wrong length was supplied.
	ErrInvalidKeySize = errors.New("sionic: invalid key size")

	// ErrInvalidNonceSize indicates a nonce prefix of the wrong length.
	ErrInvalidNonceSize = errors.New("sionic: invalid nonce size")

	// ErrInvalidBufferSize indicates a fragment size of 0 or > MaxBufSize.
	ErrInvalidBufferSize = errors.New("sionic: invalid buffer size")

	// ErrUnsupportedCipherSuite indicates an unknown or disallowed cipher suite.
	ErrUnsupportedCipherSuite = errors.New("sionic: unsupported cipher suite")
)

// Streaming-operation sentinel errors.
var (
	// ErrNotAuthentic indicates a fragment's authentication tag did not
	// verify. Surfaces to callers wrapped in a *StreamError.
	ErrNotAuthentic = errors.New("sionic: ciphertext not authentic")

	// ErrCounterExceeded indicates the 32-bit fragment counter has been
	// exhausted (2^32 fragments sealed/opened on one channel).
	ErrCounterExceeded = errors.New("sionic: fragment counter exceeded")

	// ErrChannelErrored is returned by any operation attempted after the
	// channel's sticky error latch has been set.
	ErrChannelErrored = errors.New("sionic: channel is in an errored state")

	// ErrAlreadyClosed is returned by Write/Flush after Close has
	// completed successfully.
	ErrAlreadyClosed = errors.New("sionic: channel already closed")

	// ErrCiphertextTooShort indicates a terminal ciphertext fragment
	// shorter than TagLen bytes — the stream was truncated.
	ErrCiphertextTooShort = errors.New("sionic: ciphertext too short")
)

// Hybrid key-exchange sentinel errors (pkg/keyexchange only; the core
// channel never returns these).
var (
	ErrKeyGenerationFailed = errors.New("keyexchange: key generation failed")
	ErrEncapsulationFailed = errors.New("keyexchange: encapsulation failed")
	ErrDecapsulationFailed = errors.New("keyexchange: decapsulation failed")
	ErrInvalidPublicKey    = errors.New("keyexchange: invalid public key")
	ErrInvalidPrivateKey   = errors.New("keyexchange: invalid private key")
	ErrInvalidCiphertext   = errors.New("keyexchange: invalid ciphertext")
)

// StreamError wraps an error encountered while writing, flushing, or
// closing a channel with the operation that failed.
type StreamError struct {
	Op  string // "write", "flush", "close", "seal", "open"
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("sionic: %s: %v", e.Op, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// NewStreamError wraps err with the operation that produced it.
func NewStreamError(op string, err error) *StreamError {
	return &StreamError{Op: op, Err: err}
}

// ConstructError wraps a construction-time failure with the parameter
// that was rejected.
type ConstructError struct {
	Param string // "key", "nonce", "bufSize", "cipherSuite"
	Err   error
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("sionic: invalid %s: %v", e.Param, e.Err)
}

func (e *ConstructError) Unwrap() error {
	return e.Err
}

// NewConstructError wraps err with the parameter that was rejected.
func NewConstructError(param string, err error) *ConstructError {
	return &ConstructError{Param: param, Err: err}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
