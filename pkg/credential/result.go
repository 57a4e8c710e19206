package credential

import (
	"crypto/ecdh"

	"github.com/samber/mo"
)

// Minted bundles a freshly minted credential's ID and signing keypair.
type Minted struct {
	ID   []byte
	Priv *ecdh.PrivateKey
}

// NewCredentialResult wraps NewCredential in a mo.Result, for callers
// composing a chain of fallible steps (mint, then bind, then persist)
// that want to defer error handling to the end of the chain rather than
// branching after every call.
func NewCredentialResult(masterSecret []byte, rnd func([]byte), credProtectKey []byte) mo.Result[Minted] {
	id, priv, err := NewCredential(masterSecret, rnd, credProtectKey)
	if err != nil {
		return mo.Err[Minted](err)
	}
	return mo.Ok(Minted{ID: id, Priv: priv})
}

// DeriveCredentialResult wraps DeriveCredential in a mo.Result.
func DeriveCredentialResult(masterSecret, credentialID, credProtectKey []byte) mo.Result[*ecdh.PrivateKey] {
	priv, err := DeriveCredential(masterSecret, credentialID, credProtectKey)
	if err != nil {
		return mo.Err[*ecdh.PrivateKey](err)
	}
	return mo.Ok(priv)
}
