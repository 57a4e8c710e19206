package secretstate

// nonceSize is the width of the monotonic AEAD nonce counter: the full
// AES-256-GCM nonce, stored little-endian so incrementing is a simple
// ripple-carry add over the byte slice.
const nonceSize = 12

// incrementNonce adds 1 to the little-endian 96-bit counter in place. A
// wraparound of the full counter is not handled specially: at one
// increment per persisted-state update it would take longer than the
// device's service life to exhaust.
func incrementNonce(ctr []byte) {
	for i := 0; i < len(ctr); i++ {
		ctr[i]++
		if ctr[i] != 0 {
			return
		}
	}
}
