package primitives

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Aes256CbcEncrypt encrypts plaintext under key using AES-256-CBC with the
// given iv. No padding is applied: plaintext must be a positive multiple of
// the AES block size, or ErrInvalidLength is returned. Block alignment is
// the caller's responsibility, per the deliberate absence of PKCS#7 in this
// core.
func Aes256CbcEncrypt(iv, key, plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 || len(plaintext)%aes.BlockSize != 0 {
		return nil, ErrInvalidLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("primitives: cannot create AES cipher: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return nil, ErrInvalidLength
	}

	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)
	return ciphertext, nil
}

// Aes256CbcDecrypt is the decryption dual of Aes256CbcEncrypt.
func Aes256CbcDecrypt(iv, key, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("primitives: cannot create AES cipher: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return nil, ErrInvalidLength
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	return plaintext, nil
}
