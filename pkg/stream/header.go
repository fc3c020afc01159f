package stream

import (
	"github.com/pzverkov/sionic/internal/constants"
	"github.com/pzverkov/sionic/pkg/crypto"
)

// deriveHeader builds the 17-byte derived AAD header: one marker byte
// followed by a 16-byte MAC over the caller's associated data, computed
// by sealing an empty plaintext under the channel's key and the
// counter's first nonce (sequence 0). Every fragment that follows uses
// this header as its own AAD, so a fragment sealed under the wrong user
// AAD, key, or nonce prefix fails authentication rather than silently
// decrypting under the wrong context.
//
// marker is MarkerInterior initially; EncWriter/DecWriter flip it to
// MarkerTerminal in place before sealing/opening the last fragment, so
// the header's MAC bytes never need recomputing.
func deriveHeader(algo crypto.Algorithm, counter *crypto.Counter, userAAD []byte) ([]byte, error) {
	nonce, err := counter.Next()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, constants.TagLen)
	mac, err := algo.SealInPlace(nonce, userAAD, buf)
	if err != nil {
		return nil, err
	}

	header := make([]byte, constants.HeaderLen)
	header[0] = constants.MarkerInterior
	copy(header[1:], mac)
	return header, nil
}
