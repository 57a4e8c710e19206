package secretstate

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ctap/authenticator-core/pkg/memstore"
)

func testEncMode(t *testing.T) cbor.EncMode {
	t.Helper()
	em, err := cbor.CTAP2EncOptions().EncMode()
	require.NoError(t, err)
	return em
}

func resetFixture(t *testing.T) (*PublicData, *SecretData, []byte, *memstore.Store, cbor.EncMode) {
	t.Helper()
	rnd := memstore.NewRand()
	store := memstore.NewStore()
	encMode := testEncMode(t)

	pd, sd, ks, err := Reset(store, encMode, rnd, [nonceSize]byte{})
	require.NoError(t, err)
	return pd, sd, ks, store, encMode
}

func TestResetProducesValidDefaultPinState(t *testing.T) {
	pd, sd, ks, store, _ := resetFixture(t)
	defer sd.Zeroize()

	assert.True(t, pd.Meta.Valid)
	assert.True(t, pd.ForcePinChange)
	assert.EqualValues(t, MaxPinRetries, pd.Meta.PinRetries)
	assert.Len(t, ks, 32)
	assert.Len(t, pd.Meta.Salt, saltSize)
	assert.NotEmpty(t, pd.C)
	assert.NotEmpty(t, pd.Tag)

	loaded, err := Load(store)
	require.NoError(t, err)
	reopened, err := OpenSecret(loaded, ks)
	require.NoError(t, err)
	defer reopened.Zeroize()
	assert.Equal(t, sd.MasterSecret, reopened.MasterSecret)
	assert.Equal(t, sd.PinHash, reopened.PinHash)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	pd, sd, _, _, encMode := resetFixture(t)
	defer sd.Zeroize()

	blob, err := Serialize(encMode, pd)
	require.NoError(t, err)

	back, err := Deserialize(blob)
	require.NoError(t, err)
	assert.Equal(t, pd.Meta.Salt, back.Meta.Salt)
	assert.Equal(t, pd.C, back.C)
	assert.Equal(t, pd.Tag, back.Tag)
	assert.Equal(t, pd.Meta.PinRetries, back.Meta.PinRetries)
}

func TestDeserializeFallsBackToBareCbor(t *testing.T) {
	pd, sd, _, _, _ := resetFixture(t)
	defer sd.Zeroize()

	bare, err := cbor.Marshal(pd)
	require.NoError(t, err)

	back, err := Deserialize(bare)
	require.NoError(t, err)
	assert.Equal(t, pd.Meta.Salt, back.Meta.Salt)
}

func TestLoadRoundTripsThroughStore(t *testing.T) {
	pd, sd, _, store, _ := resetFixture(t)
	defer sd.Zeroize()

	loaded, err := Load(store)
	require.NoError(t, err)
	assert.Equal(t, pd.Meta.Salt, loaded.Meta.Salt)
}

func TestLoadReturnsNotFoundOnEmptyStore(t *testing.T) {
	store := memstore.NewStore()
	_, err := Load(store)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSecretAdvancesNonceAndPersists(t *testing.T) {
	pd, sd, ks, store, encMode := resetFixture(t)
	defer sd.Zeroize()

	prevNonce := append([]byte{}, pd.Meta.NonceCtr...)
	sd.SignCtr = 42

	require.NoError(t, UpdateSecret(store, encMode, pd, sd, ks))
	assert.NotEqual(t, prevNonce, pd.Meta.NonceCtr)

	loaded, err := Load(store)
	require.NoError(t, err)
	reopened, err := OpenSecret(loaded, ks)
	require.NoError(t, err)
	defer reopened.Zeroize()
	assert.EqualValues(t, 42, reopened.SignCtr)
}
