package credential

import "errors"

// ErrCredentialIdInvalid is returned by DeriveCredential when a
// credential ID's integrity tag does not match, or when its length is
// inconsistent with the credProtectKey the caller supplied.
var ErrCredentialIdInvalid = errors.New("credential: credential ID failed integrity check")
