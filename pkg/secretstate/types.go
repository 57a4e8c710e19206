// Package secretstate implements PublicData/SecretData: the authenticator's
// at-rest representation, and the reset/load/update/validate-PIN pipeline
// that owns it. A plaintext Meta header travels alongside an AEAD-sealed
// blob containing the master secret, PIN hash, PIN length, and sign
// counter.
package secretstate

// Meta is the plaintext header of PublicData.
type Meta struct {
	Valid      bool   `cbor:"valid"`
	Salt       []byte `cbor:"salt"`
	NonceCtr   []byte `cbor:"nonce_ctr"`
	PinRetries uint8  `cbor:"pin_retries"`
}

// PublicData is the complete at-rest blob: plaintext metadata plus the
// AEAD-sealed SecretData ciphertext and tag.
type PublicData struct {
	Meta           Meta   `cbor:"meta"`
	ForcePinChange bool   `cbor:"forcePINChange"`
	C              []byte `cbor:"c"`
	Tag            []byte `cbor:"tag"`
}

// SecretData is the plaintext contained inside PublicData.C once opened.
type SecretData struct {
	MasterSecret []byte `cbor:"master_secret"`
	PinHash      []byte `cbor:"pin_hash"`
	PinLength    uint8  `cbor:"pin_length"`
	SignCtr      uint32 `cbor:"sign_ctr"`
}

// Zeroize overwrites every secret byte slice in sd with zeros. Callers
// defer this on every exit path that materializes a SecretData, per this
// module's scoped-secret-zeroization contract.
func (sd *SecretData) Zeroize() {
	zeroize(sd.MasterSecret)
	zeroize(sd.PinHash)
}

func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

const (
	// MaxPinRetries is the retry count restored at reset and after a
	// successful PIN validation.
	MaxPinRetries = 8
	// MaxPinLength is the maximum PIN length in bytes this core accepts.
	MaxPinLength = 63
	// DefaultPin is the literal default PIN set at reset. Shipping a
	// device with a known default PIN is a documented pre-production
	// posture; reset sets ForcePinChange to steer production deployments
	// away from it.
	DefaultPin = "candystick"
)
