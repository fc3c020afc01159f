package crypto

import (
	"encoding/binary"

	"github.com/pzverkov/sionic/internal/constants"
	sioerrors "github.com/pzverkov/sionic/internal/errors"
)

// Counter builds the per-fragment nonce fed to an Algorithm: an 8-byte
// caller-supplied prefix plus a 32-bit little-endian sequence number.
// Next consumes the current sequence value and then advances it, so the
// very first call (used to derive the channel's AAD header) emits
// seq=0, and every subsequent call emits 1, 2, 3, ... — matching the
// construction-consumes-counter-0 rule.
type Counter struct {
	prefix   [constants.UserNonceLen]byte
	seq      uint32
	exceeded bool
}

// NewCounter builds a Counter from an 8-byte nonce prefix, starting at
// sequence 0.
func NewCounter(prefix []byte) (*Counter, error) {
	if len(prefix) != constants.UserNonceLen {
		return nil, sioerrors.NewConstructError("nonce", sioerrors.ErrInvalidNonceSize)
	}
	c := &Counter{}
	copy(c.prefix[:], prefix)
	return c, nil
}

// Next emits the next 12-byte nonce and advances the sequence. Returns
// ErrCounterExceeded once all 2^32 sequence values have been consumed.
func (c *Counter) Next() ([constants.NonceLen]byte, error) {
	var nonce [constants.NonceLen]byte
	if c.exceeded {
		return nonce, sioerrors.NewStreamError("nonce", sioerrors.ErrCounterExceeded)
	}

	copy(nonce[:constants.UserNonceLen], c.prefix[:])
	binary.LittleEndian.PutUint32(nonce[constants.UserNonceLen:], c.seq)

	if c.seq == 0xFFFFFFFF {
		c.exceeded = true
	} else {
		c.seq++
	}
	return nonce, nil
}
