// Package credential derives per-relying-party P-256 signing keypairs
// from the authenticator's master secret, without ever storing a private
// key at rest: a credential's private key is reconstructed on demand from
// its credential ID (CTX) and the master secret that minted it.
package credential

import (
	"crypto/ecdh"
	"fmt"

	"github.com/go-ctap/authenticator-core/pkg/primitives"
)

// maxDeriveAttempts bounds the rejection-sampling loop. A scalar outside
// [1, n-1] occurs with probability ~2^-32; this many attempts makes
// exhaustion astronomically unlikely while keeping derivation a pure,
// terminating function.
const maxDeriveAttempts = 8

// ctxSize is the width of the random context each credential is minted
// with. 32 bytes keeps derivation's HKDF salt as wide as its hash output.
const ctxSize = 32

// deriveScalar turns (masterSecret, ctx) into a P-256 private key
// deterministically: ctx seeds the HKDF salt and the first candidate is
// expanded under info "CRED"; each retry appends a one-byte attempt
// counter to the info string, giving rejection sampling a fresh candidate
// each round without touching ctx itself.
func deriveScalar(masterSecret, ctx []byte) (*ecdh.PrivateKey, error) {
	prk := primitives.HkdfExtract(ctx, masterSecret)

	var lastErr error
	for attempt := 0; attempt < maxDeriveAttempts; attempt++ {
		info := []byte("CRED")
		if attempt > 0 {
			info = append(info, byte(attempt))
		}
		scalar, err := primitives.HkdfExpand(prk, info, 32)
		if err != nil {
			return nil, fmt.Errorf("credential: HKDF expand failed: %w", err)
		}

		priv, err := primitives.P256KeypairFromScalar(scalar)
		if err == nil {
			return priv, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("credential: could not derive a valid P-256 scalar after %d attempts: %w", maxDeriveAttempts, lastErr)
}

// newCtx draws a fresh random context of ctxSize bytes.
func newCtx(rnd func([]byte)) []byte {
	ctx := make([]byte, ctxSize)
	rnd(ctx)
	return ctx
}
