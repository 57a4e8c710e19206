package primitives

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HkdfExtract computes the RFC 5869 HKDF-Extract(salt, ikm) pseudorandom
// key, 32 bytes for SHA-256.
func HkdfExtract(salt, ikm []byte) []byte {
	return hkdf.Extract(sha256.New, ikm, salt)
}

// HkdfExpand computes the RFC 5869 HKDF-Expand(prk, info, L) output keying
// material.
func HkdfExpand(prk, info []byte, length int) ([]byte, error) {
	okm := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(sha256.New, prk, info), okm); err != nil {
		return nil, fmt.Errorf("primitives: hkdf expand failed: %w", err)
	}
	return okm, nil
}
