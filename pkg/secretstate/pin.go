package secretstate

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/go-ctap/authenticator-core/pkg/collab"
	"github.com/go-ctap/authenticator-core/pkg/primitives"
)

func checkPinLength(pin []byte) error {
	if len(pin) < 1 || len(pin) > MaxPinLength {
		return ErrInvalidLength
	}
	return nil
}

// ValidatePin is the PIN check itself: it derives K_s' = HKDF-extract(salt,
// LEFT(SHA-256(pinBytes), 16)) and attempts to open SecretData under it.
// Success is exactly GCM authentication succeeding — there is no separate
// hash comparison, so a wrong PIN and a corrupted blob are
// indistinguishable to an attacker measuring timing. Retries are
// decremented and persisted before the open attempt, so a crash between
// decrement and comparison still costs the attacker a retry. A successful
// match restores PinRetries to MaxPinRetries and reseals SecretData under
// a fresh nonce. The caller owns the returned SecretData and must Zeroize
// it.
func ValidatePin(store collab.Store, encMode cbor.EncMode, pd *PublicData, pinBytes []byte) (*SecretData, []byte, error) {
	if err := checkPinLength(pinBytes); err != nil {
		return nil, nil, err
	}
	if pd.Meta.PinRetries == 0 {
		return nil, nil, ErrPinBlocked
	}

	pd.Meta.PinRetries--
	if err := persist(store, encMode, pd); err != nil {
		return nil, nil, err
	}

	pinHash := primitives.PinHash(pinBytes)
	ks := deriveStorageKey(pd.Meta.Salt, pinHash[:])

	sd, err := OpenSecret(pd, ks)
	if err != nil {
		return nil, nil, ErrPinInvalid
	}

	pd.Meta.PinRetries = MaxPinRetries
	if err := UpdateSecret(store, encMode, pd, sd, ks); err != nil {
		sd.Zeroize()
		return nil, nil, err
	}
	return sd, ks, nil
}

// SetPin installs newPin as the device's current PIN: it rewrites sd's PIN
// hash and length, clears pd.ForcePinChange, and returns the storage key
// the new PIN implies. It neither re-seals sd nor persists anything. sd
// must already be open (normally via a prior ValidatePin call against the
// device's current PIN). The caller must persist the mutation with
// UpdateSecret, passing the returned key.
func SetPin(pd *PublicData, sd *SecretData, newPin []byte) (newKs []byte, err error) {
	if err := checkPinLength(newPin); err != nil {
		return nil, err
	}

	hash := primitives.PinHash(newPin)
	sd.PinHash = hash[:]
	sd.PinLength = uint8(len(newPin))
	pd.ForcePinChange = false
	return deriveStorageKey(pd.Meta.Salt, hash[:]), nil
}

// ChangePin is ValidatePin against oldPin immediately followed by SetPin
// with newPin: it re-derives and opens under the old PIN's storage key
// (with the same retry bookkeeping ValidatePin applies), then rewrites and
// persists SecretData under the new PIN's storage key. The caller owns the
// returned SecretData and must Zeroize it.
func ChangePin(store collab.Store, encMode cbor.EncMode, pd *PublicData, oldPin, newPin []byte) (*SecretData, error) {
	if err := checkPinLength(newPin); err != nil {
		return nil, err
	}

	sd, _, err := ValidatePin(store, encMode, pd, oldPin)
	if err != nil {
		return nil, err
	}

	newKs, err := SetPin(pd, sd, newPin)
	if err != nil {
		sd.Zeroize()
		return nil, err
	}
	if err := UpdateSecret(store, encMode, pd, sd, newKs); err != nil {
		sd.Zeroize()
		return nil, err
	}
	return sd, nil
}
