package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-auth/internal/auth"
	"clinic-auth/internal/mocks"
	"clinic-auth/internal/observability"
)

func newTestManager(store auth.TokenStore, at time.Time) *auth.SessionManager {
	return auth.NewSessionManager(store, auth.Config{}, observability.NewLogger()).
		WithClock(fixedClock(at))
}

func TestSessionManager_CreateTokenPair_Expiries(t *testing.T) {
	store := newFakeTokenStore()
	manager := newTestManager(store, testTime)
	ctx := context.Background()
	acct := testAccount()

	rec, err := manager.CreateTokenPair(ctx, acct, false)
	require.NoError(t, err)
	assert.Equal(t, testTime.Add(15*time.Minute), rec.AccessExpiresAt)
	assert.Equal(t, testTime.Add(24*time.Hour), rec.RefreshExpiresAt)

	remembered, err := manager.CreateTokenPair(ctx, acct, true)
	require.NoError(t, err)
	assert.Equal(t, testTime.Add(15*time.Minute), remembered.AccessExpiresAt)
	assert.Equal(t, testTime.Add(30*24*time.Hour), remembered.RefreshExpiresAt)
}

func TestSessionManager_CreateTokenPair_SingleActiveSession(t *testing.T) {
	store := newFakeTokenStore()
	manager := newTestManager(store, testTime)
	ctx := context.Background()
	acct := testAccount()

	first, err := manager.CreateTokenPair(ctx, acct, false)
	require.NoError(t, err)

	second, err := manager.CreateTokenPair(ctx, acct, false)
	require.NoError(t, err)

	assert.Equal(t, 1, store.countActive(acct.ID, testTime))

	// The first session died the moment the second was issued.
	rec, err := manager.ValidateToken(ctx, first.AccessToken)
	require.NoError(t, err)
	assert.Nil(t, rec)

	rec, err = manager.ValidateToken(ctx, second.AccessToken)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, acct.ID, rec.AccountID)
}

func TestSessionManager_ConcurrentLogins_ExactlyOneSurvivor(t *testing.T) {
	store := newFakeTokenStore()
	manager := newTestManager(store, testTime)
	acct := testAccount()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.CreateTokenPair(context.Background(), acct, false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.countActive(acct.ID, testTime))
}

func TestSessionManager_RefreshAccessToken(t *testing.T) {
	store := newFakeTokenStore()
	now := testTime
	manager := auth.NewSessionManager(store, auth.Config{}, observability.NewLogger()).
		WithClock(func() time.Time { return now })
	ctx := context.Background()

	rec, err := manager.CreateTokenPair(ctx, testAccount(), false)
	require.NoError(t, err)
	oldAccess := rec.AccessToken
	oldRefresh := rec.RefreshToken
	oldRefreshExpiry := rec.RefreshExpiresAt

	now = now.Add(10 * time.Minute)
	grant, err := manager.RefreshAccessToken(ctx, oldRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, oldAccess, grant.AccessToken)
	assert.Equal(t, now.Add(15*time.Minute), grant.ExpiresAt)

	// Refresh token and its expiry are byte-identical to before the call.
	stored, err := store.FindByRefreshToken(ctx, oldRefresh)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, oldRefresh, stored.RefreshToken)
	assert.Equal(t, oldRefreshExpiry, stored.RefreshExpiresAt)
	assert.Equal(t, grant.AccessToken, stored.AccessToken)

	// The rotated-out access token no longer validates.
	old, err := manager.ValidateToken(ctx, oldAccess)
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestSessionManager_RefreshAccessToken_UniformFailure(t *testing.T) {
	store := newFakeTokenStore()
	now := testTime
	manager := auth.NewSessionManager(store, auth.Config{}, observability.NewLogger()).
		WithClock(func() time.Time { return now })
	ctx := context.Background()

	// Unknown token.
	_, err := manager.RefreshAccessToken(ctx, "no-such-token")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)

	// Revoked token.
	rec, err := manager.CreateTokenPair(ctx, testAccount(), false)
	require.NoError(t, err)
	require.NoError(t, manager.RevokeToken(ctx, rec.AccessToken))
	_, err = manager.RefreshAccessToken(ctx, rec.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)

	// Refresh-expired token.
	rec2, err := manager.CreateTokenPair(ctx, testAccount(), false)
	require.NoError(t, err)
	now = now.Add(25 * time.Hour)
	_, err = manager.RefreshAccessToken(ctx, rec2.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestSessionManager_RevokeToken_Idempotent(t *testing.T) {
	store := newFakeTokenStore()
	manager := newTestManager(store, testTime)
	ctx := context.Background()

	require.NoError(t, manager.RevokeToken(ctx, "never-issued"))

	rec, err := manager.CreateTokenPair(ctx, testAccount(), false)
	require.NoError(t, err)
	require.NoError(t, manager.RevokeToken(ctx, rec.AccessToken))
	require.NoError(t, manager.RevokeToken(ctx, rec.AccessToken))

	valid, err := manager.ValidateToken(ctx, rec.AccessToken)
	require.NoError(t, err)
	assert.Nil(t, valid)
}

func TestSessionManager_RevokeAllUserTokens(t *testing.T) {
	store := newFakeTokenStore()
	manager := newTestManager(store, testTime)
	ctx := context.Background()

	// Seed three active rows directly; the invariant is what
	// RevokeAllUserTokens restores.
	seed := func(id, access, refresh string) {
		require.NoError(t, store.Create(ctx, &auth.TokenRecord{
			ID: id, AccountID: "acct-1",
			AccessToken: access, RefreshToken: refresh,
			AccessExpiresAt:  testTime.Add(15 * time.Minute),
			RefreshExpiresAt: testTime.Add(24 * time.Hour),
			CreatedAt:        testTime,
		}))
	}
	seed("t1", "access-1", "refresh-1")
	seed("t2", "access-2", "refresh-2")
	seed("t3", "access-3", "refresh-3")

	count, err := manager.RevokeAllUserTokens(ctx, "acct-1", "access-2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	survivor, err := manager.ValidateToken(ctx, "access-2")
	require.NoError(t, err)
	require.NotNil(t, survivor)
	assert.Equal(t, "t2", survivor.ID)

	count, err = manager.RevokeAllUserTokens(ctx, "acct-1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSessionManager_CleanupExpiredTokens(t *testing.T) {
	store := newFakeTokenStore()
	manager := newTestManager(store, testTime)
	ctx := context.Background()

	add := func(id string, revoked bool, accessExp, refreshExp time.Time) {
		require.NoError(t, store.Create(ctx, &auth.TokenRecord{
			ID: id, AccountID: "acct-1",
			AccessToken: "access-" + id, RefreshToken: "refresh-" + id,
			Revoked:          revoked,
			AccessExpiresAt:  accessExp,
			RefreshExpiresAt: refreshExp,
			CreatedAt:        testTime,
		}))
	}
	future := testTime.Add(time.Hour)
	past := testTime.Add(-time.Hour)

	add("revoked", true, future, future)
	add("access-expired", false, past, future)
	add("refresh-expired", false, future, past)
	add("live", false, future, future)

	count, err := manager.CleanupExpiredTokens(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	live, err := manager.ValidateToken(ctx, "access-live")
	require.NoError(t, err)
	assert.NotNil(t, live)
}

func TestSessionManager_ValidateToken(t *testing.T) {
	store := newFakeTokenStore()
	now := testTime
	manager := auth.NewSessionManager(store, auth.Config{}, observability.NewLogger()).
		WithClock(func() time.Time { return now })
	ctx := context.Background()

	rec, err := manager.CreateTokenPair(ctx, testAccount(), false)
	require.NoError(t, err)

	got, err := manager.ValidateToken(ctx, rec.AccessToken)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ID, got.ID)

	// Past the access expiry the same token is dead, refresh or not.
	now = now.Add(16 * time.Minute)
	got, err = manager.ValidateToken(ctx, rec.AccessToken)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionManager_StoreFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockTokenStore(ctrl)
	manager := auth.NewSessionManager(store, auth.Config{}, observability.NewLogger())
	storeErr := errors.New("connection refused")

	store.EXPECT().FindByAccessToken(gomock.Any(), "some-token").Return(nil, storeErr)

	// A store outage is never read as "token valid" or "token invalid".
	_, err := manager.ValidateToken(context.Background(), "some-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestSessionManager_CreateTokenPair_SweepFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockTokenStore(ctrl)
	manager := auth.NewSessionManager(store, auth.Config{}, observability.NewLogger()).
		WithClock(fixedClock(testTime))

	store.EXPECT().DeleteDefunct(gomock.Any(), "acct-1", gomock.Any()).
		Return(int64(0), errors.New("sweep failed"))
	store.EXPECT().ReplaceActive(gomock.Any(), gomock.Any()).Return(nil)

	rec, err := manager.CreateTokenPair(context.Background(), testAccount(), false)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.AccessToken)
}
