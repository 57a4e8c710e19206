package primitives

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHmacSha256DeterministicAndVerifiable(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	msg := []byte("ctap2fido2webauthn")
	mac1 := HmacSha256(key, msg)
	mac2 := HmacSha256(key, msg)
	assert.Len(t, mac1, 32)
	assert.True(t, CtEq(mac1, mac2))
}

func TestHmacSha256DetectsTampering(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	msg := []byte("ctap2fido2webauthn")
	mac := HmacSha256(key, msg)

	tamperedMsg := append([]byte{}, msg...)
	tamperedMsg[0] ^= 0x01
	assert.False(t, CtEq(mac, HmacSha256(key, tamperedMsg)))

	tamperedMac := append([]byte{}, mac...)
	tamperedMac[24] ^= 0x01
	assert.False(t, CtEq(mac, tamperedMac))
}

func TestCtEq(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 3, 4}
	c := []byte{1, 2, 3, 5}

	assert.True(t, CtEq(a, b))
	assert.False(t, CtEq(a, c))
	assert.False(t, CtEq(a, []byte{1, 2, 3}))
}
