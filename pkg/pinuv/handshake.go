// Package pinuv implements CTAP2 PIN/UV Auth Protocol Two: the ECDH key
// agreement that establishes a shared transport key, the AES-CBC/HMAC
// operations built on it, and the pinUvAuthToken lifecycle state machine
// that governs when a token may authorize a privileged command.
package pinuv

import (
	"crypto/ecdh"
	"fmt"

	"github.com/go-ctap/authenticator-core/pkg/primitives"
	"github.com/ldclabs/cose/key"
)

// coseAlgECDHESHKDF256 is COSE algorithm -25, ECDH-ES + HKDF-256: the
// algorithm identifier CTAP2 requires on a platform's or authenticator's
// key-agreement COSE_Key.
const coseAlgECDHESHKDF256 = -25

// KeyAgreement holds one side's ephemeral P-256 keypair for a single
// PIN/UV Auth Protocol Two handshake. A fresh KeyAgreement is expected for
// every GetKeyAgreement round: TokenState.Regenerate retires the live token
// and hands back a new KeyAgreement to replace this one.
type KeyAgreement struct {
	priv *ecdh.PrivateKey
}

// Initialize draws a fresh ephemeral P-256 keypair using rnd.
func (ka *KeyAgreement) Initialize(rnd func([]byte)) error {
	priv, err := primitives.P256GenerateKeypair(rnd)
	if err != nil {
		return fmt.Errorf("pinuv: cannot generate ephemeral keypair: %w", err)
	}
	ka.priv = priv
	return nil
}

// GetPublicKey encodes this side's ephemeral public key as a COSE_Key
// tagged with the ECDH-ES+HKDF-256 algorithm, ready to place in a
// getKeyAgreement response.
func (ka *KeyAgreement) GetPublicKey() (key.Key, error) {
	return primitives.PointToCose(ka.priv.PublicKey(), coseAlgECDHESHKDF256)
}

// ECDH completes the handshake against the peer's COSE_Key public point,
// deriving the two transport keys per CTAP2 Protocol Two's KDF: HKDF-
// SHA256 with a 32-byte all-zero salt, expanded twice under distinct info
// labels into a 32-byte HMAC key and a 32-byte AES key.
func (ka *KeyAgreement) ECDH(peer key.Key) (hmacKey, aesKey []byte, err error) {
	peerPub, err := primitives.CoseToPoint(peer)
	if err != nil {
		return nil, nil, err
	}

	shared, err := primitives.P256ECDH(ka.priv, peerPub)
	if err != nil {
		return nil, nil, err
	}
	defer zeroize(shared)

	prk := primitives.HkdfExtract(make([]byte, 32), shared)
	defer zeroize(prk)

	hmacKey, err = primitives.HkdfExpand(prk, []byte("CTAP2 HMAC key"), 32)
	if err != nil {
		return nil, nil, fmt.Errorf("pinuv: cannot derive HMAC key: %w", err)
	}
	aesKey, err = primitives.HkdfExpand(prk, []byte("CTAP2 AES key"), 32)
	if err != nil {
		return nil, nil, fmt.Errorf("pinuv: cannot derive AES key: %w", err)
	}
	return hmacKey, aesKey, nil
}

func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
