// Package keyexchange implements a hybrid key encapsulation mechanism that
// combines X25519 (classical elliptic curve Diffie-Hellman) and ML-KEM-1024
// (post-quantum lattice-based KEM) to agree on the (key, nonce) pair a
// pkg/stream channel is constructed from.
//
// # Security Model
//
// The construction is IND-CCA2 secure if EITHER X25519 OR ML-KEM-1024 is
// secure, under the random oracle model for SHAKE-256:
//
//  1. Quantum resistance: ML-KEM-1024 resists attacks from quantum computers.
//  2. Classical security: X25519 provides defense if ML-KEM is broken.
//  3. Defense in depth: both must fail for the system to be compromised.
//
// # Mathematical Construction
//
// Key Generation:
//
//	(sk_x, pk_x) ← X25519.KeyGen()
//	(sk_m, pk_m) ← ML-KEM-1024.KeyGen()
//	pk = pk_x || pk_m
//	sk = (sk_x, sk_m)
//
// Encapsulation:
//
//	(ct_m, K_m) ← ML-KEM-1024.Encaps(pk_m)
//	(sk_x_eph, pk_x_eph) ← X25519.KeyGen()
//	K_x ← X25519.DH(sk_x_eph, pk_x)
//	ct = pk_x_eph || ct_m
//	transcript ← SHA3-256(pk_x || pk_m || ct)
//	K ← SHAKE-256(K_x || K_m || transcript || domain, 256)
//
// Decapsulation mirrors encapsulation using the recipient's private keys.
//
// # Compliance
//
//   - ML-KEM-1024: NIST FIPS 203 (Category 5 security)
//   - X25519: RFC 7748
//   - SHAKE-256: NIST FIPS 202
package keyexchange

import (
	"crypto/ecdh"

	"github.com/pzverkov/sionic/internal/constants"
	qerrors "github.com/pzverkov/sionic/internal/errors"
	"github.com/pzverkov/sionic/pkg/crypto"
)

// KeyPair is a hybrid key-exchange key pair combining X25519 and ML-KEM-1024.
type KeyPair struct {
	x25519Public  *ecdh.PublicKey
	x25519Private *ecdh.PrivateKey

	mlkemPublic  *crypto.MLKEMPublicKey
	mlkemPrivate *crypto.MLKEMPrivateKey
}

// PublicKey is a hybrid key-exchange public key for encapsulation.
type PublicKey struct {
	x25519 *ecdh.PublicKey
	mlkem  *crypto.MLKEMPublicKey
}

// Ciphertext is a hybrid key-exchange encapsulation result.
type Ciphertext struct {
	x25519Ephemeral []byte // 32 bytes
	mlkemCiphertext []byte // 1568 bytes
}

// GenerateKeyPair generates a new hybrid key pair using the system's CSPRNG.
// Each half of the pair is pairwise-consistency-tested as it is generated
// (crypto.GenerateX25519KeyPairWithCST, crypto.GenerateMLKEMKeyPairWithCST);
// in FIPS mode a failed test panics, otherwise it surfaces as an error here.
func GenerateKeyPair() (*KeyPair, error) {
	x25519KP, err := crypto.GenerateX25519KeyPairWithCST()
	if err != nil {
		return nil, qerrors.NewStreamError("keyexchange.GenerateKeyPair", err)
	}

	mlkemKP, err := crypto.GenerateMLKEMKeyPairWithCST()
	if err != nil {
		return nil, qerrors.NewStreamError("keyexchange.GenerateKeyPair", err)
	}

	return &KeyPair{
		x25519Public:  x25519KP.PublicKey,
		x25519Private: x25519KP.PrivateKey,
		mlkemPublic:   mlkemKP.EncapsulationKey,
		mlkemPrivate:  mlkemKP.DecapsulationKey,
	}, nil
}

// PublicKey returns the public component of the key pair.
func (kp *KeyPair) PublicKey() *PublicKey {
	return &PublicKey{
		x25519: kp.x25519Public,
		mlkem:  kp.mlkemPublic,
	}
}

// Encapsulate derives a shared secret for recipientPublic and returns the
// ciphertext the recipient decapsulates to recover the same secret.
func Encapsulate(recipientPublic *PublicKey) (*Ciphertext, []byte, error) {
	if recipientPublic == nil || recipientPublic.x25519 == nil || recipientPublic.mlkem == nil {
		return nil, nil, qerrors.ErrInvalidPublicKey
	}

	ephemeralKP, err := crypto.GenerateX25519KeyPair()
	if err != nil {
		return nil, nil, qerrors.NewStreamError("keyexchange.Encapsulate", err)
	}

	x25519Secret, err := crypto.X25519(ephemeralKP.PrivateKey, recipientPublic.x25519)
	if err != nil {
		return nil, nil, qerrors.NewStreamError("keyexchange.Encapsulate", err)
	}

	mlkemCiphertext, mlkemSecret, err := crypto.MLKEMEncapsulate(recipientPublic.mlkem)
	if err != nil {
		return nil, nil, qerrors.NewStreamError("keyexchange.Encapsulate", err)
	}

	ct := &Ciphertext{
		x25519Ephemeral: ephemeralKP.PublicKeyBytes(),
		mlkemCiphertext: mlkemCiphertext,
	}

	transcriptHash := crypto.TranscriptHash(
		recipientPublic.x25519.Bytes(),
		recipientPublic.mlkem.Bytes(),
		ct.x25519Ephemeral,
		ct.mlkemCiphertext,
	)

	sharedSecret, err := crypto.DeriveSharedSecret(x25519Secret, mlkemSecret, transcriptHash)
	if err != nil {
		return nil, nil, err
	}

	crypto.ZeroizeMultiple(x25519Secret, mlkemSecret)

	return ct, sharedSecret, nil
}

// Decapsulate recovers the shared secret ct was encapsulated to, using kp's
// private keys. Returns the same secret Encapsulate derived.
func Decapsulate(ct *Ciphertext, kp *KeyPair) ([]byte, error) {
	if ct == nil || len(ct.x25519Ephemeral) == 0 || len(ct.mlkemCiphertext) == 0 {
		return nil, qerrors.ErrInvalidCiphertext
	}
	if kp == nil || kp.x25519Private == nil || kp.mlkemPrivate == nil {
		return nil, qerrors.ErrInvalidPrivateKey
	}

	ephemeralPublic, err := crypto.ParseX25519PublicKey(ct.x25519Ephemeral)
	if err != nil {
		return nil, qerrors.NewStreamError("keyexchange.Decapsulate", err)
	}

	x25519Secret, err := crypto.X25519(kp.x25519Private, ephemeralPublic)
	if err != nil {
		return nil, qerrors.NewStreamError("keyexchange.Decapsulate", err)
	}

	mlkemSecret, err := crypto.MLKEMDecapsulate(kp.mlkemPrivate, ct.mlkemCiphertext)
	if err != nil {
		return nil, qerrors.NewStreamError("keyexchange.Decapsulate", err)
	}

	transcriptHash := crypto.TranscriptHash(
		kp.x25519Public.Bytes(),
		kp.mlkemPublic.Bytes(),
		ct.x25519Ephemeral,
		ct.mlkemCiphertext,
	)

	sharedSecret, err := crypto.DeriveSharedSecret(x25519Secret, mlkemSecret, transcriptHash)
	if err != nil {
		return nil, err
	}

	crypto.ZeroizeMultiple(x25519Secret, mlkemSecret)

	return sharedSecret, nil
}

// ChannelKeyNonce derives the (key, nonce) pair pkg/stream needs to
// construct a channel from a hybrid shared secret produced by Encapsulate
// or Decapsulate.
func ChannelKeyNonce(sharedSecret []byte) (key, nonce []byte, err error) {
	return crypto.DeriveChannelKeyNonce(sharedSecret)
}

// Bytes serializes the public key: x25519 (32 bytes) || mlkem (1568 bytes).
func (pk *PublicKey) Bytes() []byte {
	result := make([]byte, constants.KEMPublicKeySize)
	copy(result[:constants.X25519PublicKeySize], pk.x25519.Bytes())
	copy(result[constants.X25519PublicKeySize:], pk.mlkem.Bytes())
	return result
}

// ParsePublicKey parses a public key from bytes.
func ParsePublicKey(data []byte) (*PublicKey, error) {
	if len(data) != constants.KEMPublicKeySize {
		return nil, qerrors.ErrInvalidPublicKey
	}

	x25519Public, err := crypto.ParseX25519PublicKey(data[:constants.X25519PublicKeySize])
	if err != nil {
		return nil, err
	}

	mlkemPublic, err := crypto.ParseMLKEMPublicKey(data[constants.X25519PublicKeySize:])
	if err != nil {
		return nil, err
	}

	return &PublicKey{
		x25519: x25519Public,
		mlkem:  mlkemPublic,
	}, nil
}

// Bytes serializes the ciphertext: x25519 ephemeral (32) || mlkem ct (1568).
func (ct *Ciphertext) Bytes() []byte {
	result := make([]byte, constants.KEMCiphertextSize)
	copy(result[:constants.X25519PublicKeySize], ct.x25519Ephemeral)
	copy(result[constants.X25519PublicKeySize:], ct.mlkemCiphertext)
	return result
}

// ParseCiphertext parses a ciphertext from bytes.
func ParseCiphertext(data []byte) (*Ciphertext, error) {
	if len(data) != constants.KEMCiphertextSize {
		return nil, qerrors.ErrInvalidCiphertext
	}

	return &Ciphertext{
		x25519Ephemeral: data[:constants.X25519PublicKeySize],
		mlkemCiphertext: data[constants.X25519PublicKeySize:],
	}, nil
}

// Zeroize erases the private key material.
func (kp *KeyPair) Zeroize() {
	kp.x25519Private = nil
	kp.x25519Public = nil
	kp.mlkemPrivate = nil
	kp.mlkemPublic = nil
}

// Clone creates a shallow copy of the public key.
func (pk *PublicKey) Clone() *PublicKey {
	return &PublicKey{
		x25519: pk.x25519,
		mlkem:  pk.mlkem,
	}
}

// X25519PublicKey returns the X25519 component of the public key.
func (pk *PublicKey) X25519PublicKey() *ecdh.PublicKey {
	return pk.x25519
}

// MLKEMPublicKey returns the ML-KEM component of the public key.
func (pk *PublicKey) MLKEMPublicKey() *crypto.MLKEMPublicKey {
	return pk.mlkem
}
