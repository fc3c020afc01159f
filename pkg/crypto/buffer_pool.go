// Package crypto implements the AEAD primitives sionic's streaming
// channel is built on.
//
// This file (buffer_pool.go) provides pooled fragment buffers so a
// channel running at the default buffer size avoids a fresh allocation
// per fragment. Both the encrypt and the decrypt pool hold buffers of
// capacity DefaultBufSize+TagLen. The Get methods fall back to a direct
// allocation only for a bufSize above DefaultBufSize (a smaller bufSize
// still receives a pooled default-capacity buffer), and the Put methods
// drop any buffer whose capacity is not DefaultBufSize+TagLen.
package crypto

import (
	"sync"

	"github.com/pzverkov/sionic/internal/constants"
)

// BufferPool hands out zeroed fragment buffers sized for the default
// encrypting- and decrypting-sink buffer capacities.
type BufferPool struct {
	encrypt sync.Pool // capacity constants.DefaultBufSize + TagLen (room for in-place seal)
	decrypt sync.Pool // capacity constants.DefaultBufSize + TagLen
}

// globalBufferPool is the default pool used when a channel is
// constructed without a custom pool via WithBufferPool.
var globalBufferPool = NewBufferPool()

// NewBufferPool creates a new fragment buffer pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		encrypt: sync.Pool{
			New: func() any {
				buf := make([]byte, 0, constants.DefaultBufSize+constants.TagLen)
				return &buf
			},
		},
		decrypt: sync.Pool{
			New: func() any {
				buf := make([]byte, 0, constants.DefaultBufSize+constants.TagLen)
				return &buf
			},
		},
	}
}

// GetEncryptBuffer returns a zero-length buffer with at least
// constants.DefaultBufSize+TagLen of capacity, for use as an encrypting
// sink's fragment buffer. bufSize above the default falls back to a
// direct allocation.
func (p *BufferPool) GetEncryptBuffer(bufSize int) []byte {
	if bufSize > constants.DefaultBufSize {
		return make([]byte, 0, bufSize+constants.TagLen)
	}
	bufPtr := p.encrypt.Get().(*[]byte)
	return (*bufPtr)[:0]
}

// PutEncryptBuffer returns a buffer obtained from GetEncryptBuffer to the
// pool, zeroing it first since it may have held plaintext.
func (p *BufferPool) PutEncryptBuffer(buf []byte) {
	if cap(buf) != constants.DefaultBufSize+constants.TagLen {
		return
	}
	buf = buf[:cap(buf)]
	zero(buf)
	buf = buf[:0]
	p.encrypt.Put(&buf)
}

// GetDecryptBuffer is the decrypting-sink counterpart of GetEncryptBuffer.
func (p *BufferPool) GetDecryptBuffer(bufSize int) []byte {
	if bufSize > constants.DefaultBufSize {
		return make([]byte, 0, bufSize+constants.TagLen)
	}
	bufPtr := p.decrypt.Get().(*[]byte)
	return (*bufPtr)[:0]
}

// PutDecryptBuffer returns a buffer obtained from GetDecryptBuffer to the
// pool, zeroing it first since it may have held plaintext.
func (p *BufferPool) PutDecryptBuffer(buf []byte) {
	if cap(buf) != constants.DefaultBufSize+constants.TagLen {
		return
	}
	buf = buf[:cap(buf)]
	zero(buf)
	buf = buf[:0]
	p.decrypt.Put(&buf)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GlobalBufferPool returns the package-level default buffer pool shared
// by channels that do not supply their own via WithBufferPool.
func GlobalBufferPool() *BufferPool {
	return globalBufferPool
}
