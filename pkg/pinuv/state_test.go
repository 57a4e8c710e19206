package pinuv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ctap/authenticator-core/pkg/memstore"
	"github.com/go-ctap/authenticator-core/pkg/wire"
)

func TestBeginUsingAndStopUsing(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	assert.False(t, ts.IsInUse())

	ts.BeginUsing([]byte("token-bytes"), wire.PermissionMakeCredential, true)
	assert.True(t, ts.IsInUse())
	assert.True(t, ts.GetUserVerifiedFlag())
	assert.Equal(t, wire.PermissionMakeCredential, ts.Permissions())

	ts.StopUsing()
	assert.False(t, ts.IsInUse())
	assert.Nil(t, ts.Token())
}

func TestObserveExpiresOnInitialUsageTimeout(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	ts.BeginUsing([]byte("token"), wire.PermissionGetAssertion, false)

	clock.Advance(InitialUsageTimeLimitMS + 1)
	ts.Observe()
	assert.False(t, ts.IsInUse(), "a token never used within the initial window must expire")
}

func TestObserveDoesNotExpireOnInitialTimeoutAfterMarkUsed(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	ts.BeginUsing([]byte("token"), wire.PermissionGetAssertion, false)
	ts.MarkUsed()

	clock.Advance(InitialUsageTimeLimitMS + 1)
	ts.Observe()
	assert.True(t, ts.IsInUse())
}

func TestObserveClearsUserPresentAfterPresenceTimeout(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	ts.BeginUsing([]byte("token"), wire.PermissionGetAssertion, false)
	ts.MarkUsed()
	assert.True(t, ts.userPresent)

	clock.Advance(UserPresentTimeLimitMS + 1)
	ts.Observe()
	assert.True(t, ts.IsInUse(), "clearing presence must not itself expire the token")
	assert.False(t, ts.userPresent)
}

func TestBeginUsingWithUserPresentSurvivesWithoutMarkUsed(t *testing.T) {
	clock := memstore.NewClock(1000)
	ts := NewTokenState(clock)
	ts.BeginUsing([]byte("token"), wire.PermissionGetAssertion, true)

	clock.Advance(14000)
	ts.Observe()
	assert.True(t, ts.IsInUse())
	assert.True(t, ts.userPresent)
}

func TestSingleMarkUsedSurvivesPastInitialUsageWindow(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	ts.BeginUsing([]byte("token"), wire.PermissionGetAssertion, false)
	ts.MarkUsed()

	clock.Advance(MaxUsageTimePeriodMS - 1000)
	ts.Observe()
	assert.True(t, ts.IsInUse(), "a single MarkUsed must hold the token until max_usage_time_period, not just until initial_usage_time_limit")
}

func TestObserveExpiresOnMaxUsagePeriod(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	ts.BeginUsing([]byte("token"), wire.PermissionGetAssertion, false)

	for elapsedMS := uint32(0); elapsedMS < MaxUsageTimePeriodMS+InitialUsageTimeLimitMS; elapsedMS += 5000 {
		clock.Advance(5000)
		ts.MarkUsed()
		ts.Observe()
	}
	assert.False(t, ts.IsInUse(), "max usage period must expire the token regardless of ongoing activity")
}

func TestClearPermissionsExceptLbw(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	ts.BeginUsing([]byte("token"), wire.PermissionMakeCredential|wire.PermissionLargeBlobWrite, true)

	ts.ClearPermissionsExceptLbw()
	assert.Equal(t, wire.PermissionLargeBlobWrite, ts.Permissions())
}

func TestBindPermissionsRequiresInUse(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)

	err := ts.BindPermissions(wire.PermissionGetAssertion, "example.com")
	assert.ErrorIs(t, err, ErrNotInUse)
}

func TestBindPermissionsRejectsOversizedRpId(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	ts.BeginUsing([]byte("token"), wire.PermissionGetAssertion, true)

	longRpID := make([]byte, maxRpIdLength+1)
	for i := range longRpID {
		longRpID[i] = 'a'
	}
	err := ts.BindPermissions(wire.PermissionGetAssertion, string(longRpID))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestBindPermissionsLocksRpId(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	ts.BeginUsing([]byte("token"), wire.PermissionGetAssertion, true)

	require.NoError(t, ts.BindPermissions(wire.PermissionGetAssertion, "example.com"))
	rpID, bound := ts.RPID()
	assert.True(t, bound)
	assert.Equal(t, "example.com", rpID)
}

func TestRegenerateStopsUsingAndReturnsFreshAgreement(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	ts.BeginUsing([]byte("token"), wire.PermissionGetAssertion, true)

	ka, err := ts.Regenerate(mustRand(t))
	require.NoError(t, err)
	require.NotNil(t, ka)
	assert.False(t, ts.IsInUse())

	pub, err := ka.GetPublicKey()
	require.NoError(t, err)
	assert.NotNil(t, pub)
}

func TestUvRetriesAccessors(t *testing.T) {
	clock := memstore.NewClock(0)
	ts := NewTokenState(clock)
	assert.EqualValues(t, 8, ts.GetUvRetries())

	ts.SetUvRetries(3)
	assert.EqualValues(t, 3, ts.GetUvRetries())
}
