package credential

import (
	"crypto/ecdh"
	"fmt"

	"github.com/go-ctap/authenticator-core/pkg/primitives"
)

// credMacSalt is the fixed HKDF salt label the credential-ID integrity
// hook extracts under. It has no secrecy requirement; it exists only to
// domain-separate K_mac from any other key derived from the same input
// key material.
var credMacSalt = []byte("credmac")

// credMacInfo is the HKDF expand info label for K_mac.
var credMacInfo = []byte("CRED-MAC")

// macTagSize is the truncated HMAC tag length appended to a credential ID
// when the integrity hook is enabled: wide enough that forgery is
// infeasible, narrow enough to keep the credential ID small.
const macTagSize = 16

// deriveMac computes K_mac from credProtectKey and tags ctx with it,
// truncated to macTagSize bytes.
func deriveMac(credProtectKey, ctx []byte) []byte {
	prk := primitives.HkdfExtract(credMacSalt, credProtectKey)
	kMac, err := primitives.HkdfExpand(prk, credMacInfo, 32)
	if err != nil {
		// HkdfExpand only fails when the requested length exceeds HKDF's
		// output limit; 32 bytes never does.
		panic("credential: unexpected HKDF expand failure: " + err.Error())
	}
	tag := primitives.HmacSha256(kMac, ctx)
	return tag[:macTagSize]
}

// NewCredential mints a fresh credential: it draws a random CTX via rnd,
// derives its P-256 signing keypair from masterSecret, and returns the
// credential ID a relying party will present back on every later
// assertion. When credProtectKey is non-nil, the credential ID carries an
// appended integrity tag (SPEC_FULL's credential-ID integrity hook); when
// nil, the credential ID is CTX alone, identical to a build without the
// hook.
func NewCredential(masterSecret []byte, rnd func([]byte), credProtectKey []byte) (credentialID []byte, priv *ecdh.PrivateKey, err error) {
	ctx := newCtx(rnd)
	priv, err = deriveScalar(masterSecret, ctx)
	if err != nil {
		return nil, nil, err
	}

	if credProtectKey == nil {
		return ctx, priv, nil
	}
	tag := deriveMac(credProtectKey, ctx)
	return append(ctx, tag...), priv, nil
}

// DeriveCredential reconstructs a credential's P-256 signing keypair from
// its credential ID and the master secret that minted it. When
// credProtectKey is non-nil, credentialID is first split into CTX and its
// trailing tag, and the tag is verified in constant time before
// derivation proceeds; a mismatch or a credentialID of the wrong length
// returns ErrCredentialIdInvalid without deriving anything.
func DeriveCredential(masterSecret, credentialID, credProtectKey []byte) (*ecdh.PrivateKey, error) {
	ctx := credentialID
	if credProtectKey != nil {
		if len(credentialID) != ctxSize+macTagSize {
			return nil, ErrCredentialIdInvalid
		}
		ctx = credentialID[:ctxSize]
		gotTag := credentialID[ctxSize:]
		wantTag := deriveMac(credProtectKey, ctx)
		if !primitives.CtEq(gotTag, wantTag) {
			return nil, ErrCredentialIdInvalid
		}
	} else if len(credentialID) != ctxSize {
		return nil, ErrCredentialIdInvalid
	}

	priv, err := deriveScalar(masterSecret, ctx)
	if err != nil {
		return nil, fmt.Errorf("credential: cannot rederive key: %w", err)
	}
	return priv, nil
}
