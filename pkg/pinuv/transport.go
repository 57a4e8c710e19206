package pinuv

import "github.com/go-ctap/authenticator-core/pkg/primitives"

// ivSize is the AES block size used as Protocol Two's prepended random IV.
const ivSize = 16

// Encrypt implements Protocol Two's encrypt(key, demPlaintext): a fresh
// random IV is drawn via rnd, and the output is IV || AES-256-CBC(IV, key,
// plaintext).
func Encrypt(rnd func([]byte), aesKey, plaintext []byte) ([]byte, error) {
	iv := make([]byte, ivSize)
	rnd(iv)

	ct, err := primitives.Aes256CbcEncrypt(iv, aesKey, plaintext)
	if err != nil {
		return nil, err
	}
	return append(iv, ct...), nil
}

// Decrypt implements Protocol Two's decrypt: the leading ivSize bytes of
// ciphertext are the IV, the remainder is the AES-256-CBC body.
func Decrypt(aesKey, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) <= ivSize {
		return nil, ErrInvalidLength
	}
	iv, body := ciphertext[:ivSize], ciphertext[ivSize:]
	return primitives.Aes256CbcDecrypt(iv, aesKey, body)
}

// Authenticate implements Protocol Two's authenticate(key, message): the
// full, untruncated HMAC-SHA256 tag.
func Authenticate(hmacKey, message []byte) []byte {
	return primitives.HmacSha256(hmacKey, message)
}

// Verify implements Protocol Two's verify: a constant-time comparison
// against a freshly computed tag.
func Verify(hmacKey, message, signature []byte) bool {
	return primitives.CtEq(Authenticate(hmacKey, message), signature)
}
