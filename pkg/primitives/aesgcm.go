package primitives

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Aes256GcmSeal encrypts and authenticates plaintext under key/nonce/aad,
// returning the ciphertext and the 16-byte tag separately so callers can
// store PublicData's c and tag fields independently, as the at-rest format
// requires.
func Aes256GcmSeal(key, nonce, aad, plaintext []byte) (ciphertext, tag []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, nil, ErrInvalidLength
	}

	sealed := gcm.Seal(nil, nonce, plaintext, aad)
	split := len(sealed) - gcm.Overhead()
	return sealed[:split], sealed[split:], nil
}

// Aes256GcmOpen verifies tag and decrypts ciphertext under key/nonce/aad.
// On tag mismatch it returns ErrAeadAuth.
func Aes256GcmOpen(key, nonce, aad, ciphertext, tag []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, ErrInvalidLength
	}

	sealed := append(append([]byte{}, ciphertext...), tag...)
	plaintext, err := gcm.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, ErrAeadAuth
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("primitives: cannot create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("primitives: cannot create GCM: %w", err)
	}
	return gcm, nil
}
