package primitives

import (
	"crypto/ecdh"
	"fmt"

	"github.com/ldclabs/cose/iana"
	"github.com/ldclabs/cose/key"
	ecdh2 "github.com/ldclabs/cose/key/ecdh"
)

// P256 is the only curve this core ever touches.
var P256 = ecdh.P256()

// P256KeypairFromScalar interprets scalar as a P-256 private key. It
// returns ErrInvalidScalar when scalar is zero or at least the curve
// order, so callers performing rejection sampling (credential derivation,
// ephemeral keypair generation) know to re-derive with a different input
// rather than treating the failure as fatal.
func P256KeypairFromScalar(scalar []byte) (*ecdh.PrivateKey, error) {
	priv, err := P256.NewPrivateKey(scalar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return priv, nil
}

// P256GenerateKeypair draws a fresh, uniformly random P-256 keypair using
// rnd. Rejection sampling against the curve order is handled internally;
// the probability of a retry is astronomically small (~2^-32).
func P256GenerateKeypair(rnd func([]byte)) (*ecdh.PrivateKey, error) {
	seed := make([]byte, 32)
	for attempt := 0; attempt < 8; attempt++ {
		rnd(seed)
		priv, err := P256KeypairFromScalar(seed)
		if err == nil {
			return priv, nil
		}
	}
	return nil, fmt.Errorf("primitives: could not sample a valid P-256 scalar after 8 attempts")
}

// P256ECDH performs scalar multiplication of priv with peer's public point,
// rejecting off-curve or identity points with ErrInvalidPoint.
func P256ECDH(priv *ecdh.PrivateKey, peer *ecdh.PublicKey) ([]byte, error) {
	shared, err := priv.ECDH(peer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return shared, nil
}

// P256PointFromCoordinates reconstructs an uncompressed P-256 public key
// from big-endian x/y coordinates, rejecting off-curve or identity points
// with ErrInvalidPoint.
func P256PointFromCoordinates(x, y []byte) (*ecdh.PublicKey, error) {
	uncompressed := make([]byte, 0, 65)
	uncompressed = append(uncompressed, 0x04)
	uncompressed = append(uncompressed, x...)
	uncompressed = append(uncompressed, y...)

	pub, err := P256.NewPublicKey(uncompressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return pub, nil
}

// PointToCose encodes pub as an EC2 COSE_Key tagged with alg, stripping the
// kid parameter the CTAP2 spec says a COSE_Key carrying only key-agreement
// material must omit.
func PointToCose(pub *ecdh.PublicKey, alg int) (key.Key, error) {
	ck, err := ecdh2.KeyFromPublic(pub)
	if err != nil {
		return nil, fmt.Errorf("primitives: cannot encode public key as COSE_Key: %w", err)
	}
	if err := ck.Set(iana.KeyParameterAlg, alg); err != nil {
		return nil, fmt.Errorf("primitives: cannot set COSE_Key alg: %w", err)
	}
	delete(ck, iana.KeyParameterKid)
	return ck, nil
}

// CoseToPoint decodes an EC2 COSE_Key into a P-256 public key, rejecting
// off-curve or identity points with ErrInvalidPoint.
func CoseToPoint(ck key.Key) (*ecdh.PublicKey, error) {
	pub, err := ecdh2.KeyToPublic(ck)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return pub, nil
}
