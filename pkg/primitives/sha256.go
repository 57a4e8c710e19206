package primitives

import "crypto/sha256"

// Sha256 returns the SHA-256 digest of msg.
func Sha256(msg []byte) [32]byte {
	return sha256.Sum256(msg)
}

// PinHash computes the CTAP2 LEFT(SHA-256(pin), 16) PIN hash.
func PinHash(pin []byte) [16]byte {
	digest := sha256.Sum256(pin)
	var ph [16]byte
	copy(ph[:], digest[:16])
	return ph
}
