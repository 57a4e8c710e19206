package secretstate

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/go-ctap/authenticator-core/pkg/collab"
	"github.com/go-ctap/authenticator-core/pkg/primitives"
)

// saltSize is the width of Meta.Salt, the HKDF salt deriveStorageKey
// extracts under.
const saltSize = 32

// deriveStorageKey computes K_s = HKDF-SHA256.extract(salt, pinHash): the
// AES-256-GCM key sealing SecretData. It is never persisted; it is
// re-derived from the device's salt and a candidate PIN hash every time a
// caller needs to open or reseal SecretData. HKDF-extract alone already
// yields 32 bytes, exactly the key AES-256-GCM needs, so no expand step
// follows it.
func deriveStorageKey(salt, pinHash []byte) []byte {
	return primitives.HkdfExtract(salt, pinHash)
}

// Reset wipes the device back to its out-of-box state: a fresh salt and
// master secret, the default PIN, full PIN retries, and ForcePinChange set
// so a higher layer can refuse to proceed until the operator changes it.
// nowCounter seeds Meta.NonceCtr; it need not be related to the millisecond
// clock, only unique across resets sharing a store. The first seal advances
// the counter, so SecretData is sealed under nowCounter + 1 and that is the
// value stored in Meta.NonceCtr, not nowCounter itself. Reset persists the
// result itself, matching the CTAP2 reset-then-store sequence.
func Reset(store collab.Store, encMode cbor.EncMode, rnd collab.Rand, nowCounter [nonceSize]byte) (pd *PublicData, sd *SecretData, ks []byte, err error) {
	salt := make([]byte, saltSize)
	rnd.Read(salt)

	masterSecret := make([]byte, 32)
	rnd.Read(masterSecret)
	pinHash := primitives.PinHash([]byte(DefaultPin))

	sd = &SecretData{
		MasterSecret: masterSecret,
		PinHash:      pinHash[:],
		PinLength:    uint8(len(DefaultPin)),
		SignCtr:      0,
	}
	ks = deriveStorageKey(salt, pinHash[:])

	pd = &PublicData{
		Meta: Meta{
			Valid:      true,
			Salt:       salt,
			NonceCtr:   append([]byte{}, nowCounter[:]...),
			PinRetries: MaxPinRetries,
		},
		ForcePinChange: true,
	}

	if err := sealSecret(pd, sd, ks); err != nil {
		return nil, nil, nil, err
	}
	if err := persist(store, encMode, pd); err != nil {
		return nil, nil, nil, err
	}
	return pd, sd, ks, nil
}

// Load reads and decodes the persisted PublicData without opening its
// sealed SecretData. ErrNotFound propagates from the store unchanged;
// a decoded-but-invalid blob (Meta.Valid == false) surfaces as ErrCorrupt.
func Load(store collab.Store) (*PublicData, error) {
	blob, err := store.Load()
	if err != nil {
		if err == collab.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("secretstate: store load failed: %w", err)
	}

	pd, err := Deserialize(blob)
	if err != nil {
		return nil, err
	}
	if !pd.Meta.Valid {
		return nil, ErrCorrupt
	}
	return pd, nil
}

// OpenSecret unseals pd's SecretData under ks. Callers must Zeroize the
// returned SecretData once done with it.
func OpenSecret(pd *PublicData, ks []byte) (*SecretData, error) {
	nonce := pd.Meta.NonceCtr
	plaintext, err := primitives.Aes256GcmOpen(ks, nonce, nil, pd.C, pd.Tag)
	if err != nil {
		return nil, err
	}
	defer zeroize(plaintext)

	var sd SecretData
	if err := cbor.Unmarshal(plaintext, &sd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &sd, nil
}

// sealSecret re-encodes sd, advances pd.Meta.NonceCtr, then seals under
// that new value and writes the ciphertext/tag into pd. The increment
// precedes the seal so the nonce persisted alongside C is always the exact
// nonce that sealed it — never one ahead, which would make every
// subsequent OpenSecret fail authentication.
func sealSecret(pd *PublicData, sd *SecretData, ks []byte) error {
	plaintext, err := cbor.Marshal(sd)
	if err != nil {
		return fmt.Errorf("secretstate: cannot encode SecretData: %w", err)
	}
	defer zeroize(plaintext)

	incrementNonce(pd.Meta.NonceCtr)
	ct, tag, err := primitives.Aes256GcmSeal(ks, pd.Meta.NonceCtr, nil, plaintext)
	if err != nil {
		return err
	}
	pd.C = ct
	pd.Tag = tag
	return nil
}

func persist(store collab.Store, encMode cbor.EncMode, pd *PublicData) error {
	blob, err := Serialize(encMode, pd)
	if err != nil {
		return err
	}
	if err := store.Store(blob); err != nil {
		return fmt.Errorf("secretstate: store write failed: %w", err)
	}
	return nil
}

// UpdateSecret re-seals sd under ks with a fresh nonce and persists the
// resulting PublicData. Use this after any SecretData mutation: a sign
// counter bump, SetPin, or ChangePin.
func UpdateSecret(store collab.Store, encMode cbor.EncMode, pd *PublicData, sd *SecretData, ks []byte) error {
	if err := sealSecret(pd, sd, ks); err != nil {
		return err
	}
	return persist(store, encMode, pd)
}
