package pinuv

import (
	"github.com/go-ctap/authenticator-core/pkg/collab"
	"github.com/go-ctap/authenticator-core/pkg/wire"
)

// Timing constants from CTAP2's pinUvAuthToken state machine, all in
// milliseconds against the injected Clock.
const (
	// InitialUsageTimeLimitMS bounds how long a token may go unused
	// (never authorizing a single command) after BeginUsing before it is
	// discarded.
	InitialUsageTimeLimitMS uint32 = 19000
	// UserPresentTimeLimitMS bounds how long the user-present flag stays
	// asserted after the last confirmation before Observe clears it.
	UserPresentTimeLimitMS uint32 = 19000
	// MaxUsageTimePeriodMS bounds the total lifetime of a token
	// regardless of activity.
	MaxUsageTimePeriodMS uint32 = 600000
	// maxRpIdLength is the longest RP ID this core accepts in
	// BindPermissions.
	maxRpIdLength = 128
	// defaultUvRetries is the UV retry counter a new TokenState starts with.
	defaultUvRetries = 8
)

type lifecycle int

const (
	stateIdle lifecycle = iota
	stateInUse
)

// TokenState is the authenticator-side pinUvAuthToken lifecycle: the
// currently-issued token value (if any), what it is scoped to, and the
// timers that eventually expire it. It holds no ECDH state; pair it with
// a KeyAgreement for the handshake that produces the token's encryption.
type TokenState struct {
	clock collab.Clock

	state      lifecycle
	token      []byte
	permission wire.Permission
	rpID       string
	rpIDBound  bool

	userVerified bool
	userPresent  bool
	used         bool

	initialUsageStart uint32
	usagePeriodStart  uint32
	userPresentStart  uint32

	uvRetries uint
}

// NewTokenState constructs an idle TokenState against clock.
func NewTokenState(clock collab.Clock) *TokenState {
	return &TokenState{clock: clock, state: stateIdle, uvRetries: defaultUvRetries}
}

// BeginUsing installs token as the live pinUvAuthToken, scoped to
// permission. A pinUvAuthToken only ever comes from a successful PIN or UV
// check, so user_verified is unconditionally true; userIsPresent carries
// whatever presence state that check established. It starts the
// initial-usage and max-usage-period timers and clears any previous RP ID
// binding.
func (t *TokenState) BeginUsing(token []byte, permission wire.Permission, userIsPresent bool) {
	now := t.clock.NowMS()
	t.state = stateInUse
	t.token = token
	t.permission = permission
	t.userVerified = true
	t.userPresent = userIsPresent
	t.used = false
	t.rpID = ""
	t.rpIDBound = false
	t.initialUsageStart = now
	t.usagePeriodStart = now
	t.userPresentStart = now
}

// Observe applies the token state machine's time-driven transitions. A
// dispatcher calls this before consulting IsInUse/Permissions/etc. for
// any command, so an expired token never authorizes anything.
func (t *TokenState) Observe() {
	if t.state != stateInUse {
		return
	}

	now := t.clock.NowMS()
	if elapsed(t.usagePeriodStart, now) > MaxUsageTimePeriodMS {
		t.StopUsing()
		return
	}
	if !t.used && elapsed(t.initialUsageStart, now) > InitialUsageTimeLimitMS {
		t.StopUsing()
		return
	}
	if t.userPresent && elapsed(t.userPresentStart, now) > UserPresentTimeLimitMS {
		t.userPresent = false
	}
}

// MarkUsed records that the token successfully authorized a command just
// now: it latches used, which permanently disarms the initial-usage-limit
// expiry in Observe (that limit only guards against a token minted and
// never exercised), and refreshes the separate user-present timer. Call it
// only after the caller has independently confirmed the gesture this
// token's handshake required (PIN or UV); TokenState itself never performs
// that confirmation.
func (t *TokenState) MarkUsed() {
	if t.state != stateInUse {
		return
	}
	t.used = true
	t.userPresent = true
	t.userPresentStart = t.clock.NowMS()
}

// ClearPermissionsExceptLbw narrows the live token's permission mask down
// to, at most, PermissionLargeBlobWrite. CTAP2 calls for this after a
// getPinToken-family request that predates the permissions RP ID
// extension is used alongside one that supports it.
func (t *TokenState) ClearPermissionsExceptLbw() {
	t.permission &= wire.PermissionLargeBlobWrite
}

// StopUsing discards the live token and returns to Idle. It is
// idempotent: calling it while already Idle is a no-op.
func (t *TokenState) StopUsing() {
	zeroize(t.token)
	t.state = stateIdle
	t.token = nil
	t.permission = wire.PermissionNone
	t.rpID = ""
	t.rpIDBound = false
	t.userVerified = false
	t.userPresent = false
	t.used = false
}

// ResetPinUvAuthToken discards the live token without disturbing the
// ECDH key agreement it was derived from. It is the operation a
// getPinToken-family request performs on any token it is about to
// replace.
func (t *TokenState) ResetPinUvAuthToken() {
	t.StopUsing()
}

// GetUserVerifiedFlag reports whether the live token carries the
// user-verified bit. The conjunction with IsInUse is explicit rather than
// relied upon as a side effect of StopUsing clearing userVerified, so this
// cannot drift if StopUsing's implementation ever changes.
func (t *TokenState) GetUserVerifiedFlag() bool {
	return t.userVerified && t.state == stateInUse
}

// IsInUse reports whether a token is currently live. Callers should
// Observe before calling this so an expired token has already been
// retired.
func (t *TokenState) IsInUse() bool {
	return t.state == stateInUse
}

// Token returns the live pinUvAuthToken value, or nil if Idle.
func (t *TokenState) Token() []byte {
	return t.token
}

// Permissions returns the live token's permission mask.
func (t *TokenState) Permissions() wire.Permission {
	return t.permission
}

// RPID returns the live token's bound RP ID, and whether one has been
// bound at all (an unbound token authorizes any RP ID).
func (t *TokenState) RPID() (string, bool) {
	return t.rpID, t.rpIDBound
}

// BindPermissions locks the live token to rpID, the way makeCredential and
// getAssertion do on first use of a permissions-scoped token. It is only
// valid while a token is in use; calling it on an Idle TokenState is a
// caller bug and returns ErrNotInUse rather than silently doing nothing.
func (t *TokenState) BindPermissions(permission wire.Permission, rpID string) error {
	if t.state != stateInUse {
		return ErrNotInUse
	}
	if len(rpID) > maxRpIdLength {
		return ErrInvalidLength
	}
	t.permission |= permission
	t.rpID = rpID
	t.rpIDBound = true
	return nil
}

// Regenerate discards the live token and hands back a fresh KeyAgreement,
// the way a getKeyAgreement or power-cycle event does: every prior
// shared secret is invalidated along with whatever token it produced.
func (t *TokenState) Regenerate(rnd func([]byte)) (*KeyAgreement, error) {
	t.StopUsing()
	ka := &KeyAgreement{}
	if err := ka.Initialize(rnd); err != nil {
		return nil, err
	}
	return ka, nil
}

// SetUvRetries overwrites the UV retry counter. The authenticator core
// does not itself decrement this; a biometric subsystem above it owns
// that policy and calls SetUvRetries to record the result.
func (t *TokenState) SetUvRetries(n uint) {
	t.uvRetries = n
}

// GetUvRetries returns the current UV retry counter.
func (t *TokenState) GetUvRetries() uint {
	return t.uvRetries
}

// elapsed computes now-start modulo 2^32, which is correct even when the
// millisecond clock has wrapped since start was recorded.
func elapsed(start, now uint32) uint32 {
	return now - start
}
