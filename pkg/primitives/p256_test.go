package primitives

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestP256EcdhAgreement(t *testing.T) {
	a, err := P256GenerateKeypair(mustRead(t))
	require.NoError(t, err)
	b, err := P256GenerateKeypair(mustRead(t))
	require.NoError(t, err)

	sharedA, err := P256ECDH(a, b.PublicKey())
	require.NoError(t, err)
	sharedB, err := P256ECDH(b, a.PublicKey())
	require.NoError(t, err)

	assert.Equal(t, sharedA, sharedB)
	assert.Len(t, sharedA, 32)
}

func TestP256PointFromCoordinatesRejectsOffCurvePoint(t *testing.T) {
	a, err := P256GenerateKeypair(mustRead(t))
	require.NoError(t, err)

	// The all-zero coordinate pair is not a point on the curve at all,
	// which NewPublicKey already rejects before ECDH ever runs.
	_, err = P256PointFromCoordinates(make([]byte, 32), make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidPoint)
	_ = a
}

func TestPointToCoseAndBackRoundTrips(t *testing.T) {
	priv, err := P256GenerateKeypair(mustRead(t))
	require.NoError(t, err)

	ck, err := PointToCose(priv.PublicKey(), -25)
	require.NoError(t, err)

	pub, err := CoseToPoint(ck)
	require.NoError(t, err)

	assert.Equal(t, priv.PublicKey().Bytes(), pub.Bytes())
}

func TestP256KeypairFromScalarDeterministic(t *testing.T) {
	scalar := make([]byte, 32)
	_, err := rand.Read(scalar)
	require.NoError(t, err)
	scalar[0] |= 0x01 // rule out the zero scalar; one at or above the curve order stays astronomically unlikely

	priv1, err := P256KeypairFromScalar(scalar)
	require.NoError(t, err)
	priv2, err := P256KeypairFromScalar(scalar)
	require.NoError(t, err)

	assert.Equal(t, priv1.Bytes(), priv2.Bytes())
	assert.Equal(t, priv1.PublicKey().Bytes(), priv2.PublicKey().Bytes())
}

func mustRead(t *testing.T) func([]byte) {
	t.Helper()
	return func(buf []byte) {
		if _, err := rand.Read(buf); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}
	}
}
