package primitives

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HmacSha256 computes HMAC-SHA256(key, msg).
func HmacSha256(key, msg []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	return h.Sum(nil)
}
