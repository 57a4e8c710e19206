package pinuv

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRand(t *testing.T) func([]byte) {
	t.Helper()
	return func(buf []byte) {
		if _, err := rand.Read(buf); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}
	}
}

func TestHandshakeDerivesMatchingKeysOnBothSides(t *testing.T) {
	platform := &KeyAgreement{}
	require.NoError(t, platform.Initialize(mustRand(t)))
	authenticator := &KeyAgreement{}
	require.NoError(t, authenticator.Initialize(mustRand(t)))

	platformPub, err := platform.GetPublicKey()
	require.NoError(t, err)
	authenticatorPub, err := authenticator.GetPublicKey()
	require.NoError(t, err)

	hmacA, aesA, err := platform.ECDH(authenticatorPub)
	require.NoError(t, err)
	hmacB, aesB, err := authenticator.ECDH(platformPub)
	require.NoError(t, err)

	assert.Equal(t, hmacA, hmacB)
	assert.Equal(t, aesA, aesB)
	assert.NotEqual(t, hmacA, aesA)
	assert.Len(t, hmacA, 32)
	assert.Len(t, aesA, 32)
}
