package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clinic-auth/internal/observability"
)

// SessionManager issues, rotates, revokes and validates opaque token
// pairs. Tokens are random strings checked against the store on every
// request; nothing about a session is encoded in the token itself, so
// revocation takes effect immediately.
type SessionManager struct {
	tokens TokenStore
	cfg    Config
	logger *observability.Logger
	now    func() time.Time
}

func NewSessionManager(tokens TokenStore, cfg Config, logger *observability.Logger) *SessionManager {
	return &SessionManager{
		tokens: tokens,
		cfg:    cfg.withDefaults(),
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

// CreateTokenPair mints a fresh pair for the account and makes it the
// account's sole active session. The access expiry is fixed; rememberMe
// only stretches the refresh window. Defunct rows are swept best-effort
// first; revoking the remaining active rows and inserting the new one is
// a single atomic store operation.
func (m *SessionManager) CreateTokenPair(ctx context.Context, account *Account, rememberMe bool) (*TokenRecord, error) {
	ctx, cancel := m.storeCtx(ctx)
	defer cancel()

	accessToken, err := NewAccessToken()
	if err != nil {
		return nil, err
	}
	refreshToken, err := NewRefreshToken()
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, infraErr("generate token record id", err)
	}

	now := m.now().UTC()
	refreshTTL := m.cfg.RefreshTTL
	if rememberMe {
		refreshTTL = m.cfg.RememberMeTTL
	}

	rec := &TokenRecord{
		ID:               id.String(),
		AccountID:        account.ID,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  now.Add(m.cfg.AccessTTL),
		RefreshExpiresAt: now.Add(refreshTTL),
		CreatedAt:        now,
	}

	// Sweep is best-effort: a failure here must not block the login.
	if _, err := m.tokens.DeleteDefunct(ctx, account.ID, now); err != nil {
		m.logger.Warn("token_sweep_failed", map[string]any{
			"account_id": account.ID,
			"error":      err.Error(),
		})
	}

	if err := m.tokens.ReplaceActive(ctx, rec); err != nil {
		return nil, infraErr("issue token pair", err)
	}

	return rec, nil
}

// RefreshAccessToken swaps the access token and its expiry in place on
// the row holding the given refresh token. The refresh token and its
// expiry never change. Not-found, revoked and refresh-expired all fail
// with the same ErrTokenInvalid.
func (m *SessionManager) RefreshAccessToken(ctx context.Context, refreshToken string) (*AccessGrant, error) {
	ctx, cancel := m.storeCtx(ctx)
	defer cancel()

	rec, err := m.tokens.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, infraErr("lookup refresh token", err)
	}
	now := m.now().UTC()
	if rec == nil || rec.Revoked || !rec.RefreshExpiresAt.After(now) {
		return nil, ErrTokenInvalid
	}

	accessToken, err := NewAccessToken()
	if err != nil {
		return nil, err
	}
	expiresAt := now.Add(m.cfg.AccessTTL)
	if err := m.tokens.UpdateAccess(ctx, rec.ID, accessToken, expiresAt); err != nil {
		return nil, infraErr("rotate access token", err)
	}

	return &AccessGrant{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// RevokeToken marks the matching row revoked. Revoking a token that does
// not exist is a no-op, so logout is idempotent.
func (m *SessionManager) RevokeToken(ctx context.Context, accessToken string) error {
	ctx, cancel := m.storeCtx(ctx)
	defer cancel()

	if err := m.tokens.RevokeByAccessToken(ctx, accessToken); err != nil {
		return infraErr("revoke token", err)
	}
	return nil
}

// RevokeAllUserTokens revokes every active session for the account,
// optionally sparing one token. Returns the count affected.
func (m *SessionManager) RevokeAllUserTokens(ctx context.Context, accountID, exceptAccessToken string) (int64, error) {
	ctx, cancel := m.storeCtx(ctx)
	defer cancel()

	count, err := m.tokens.RevokeActive(ctx, accountID, exceptAccessToken, m.now().UTC())
	if err != nil {
		return 0, infraErr("revoke user tokens", err)
	}
	return count, nil
}

// CleanupExpiredTokens hard-deletes the account's revoked and expired
// rows. Returns the count deleted.
func (m *SessionManager) CleanupExpiredTokens(ctx context.Context, accountID string) (int64, error) {
	ctx, cancel := m.storeCtx(ctx)
	defer cancel()

	count, err := m.tokens.DeleteDefunct(ctx, accountID, m.now().UTC())
	if err != nil {
		return 0, infraErr("cleanup expired tokens", err)
	}
	return count, nil
}

// CleanupAllDefunct batch-deletes defunct rows across every account, for
// the maintenance sweep.
func (m *SessionManager) CleanupAllDefunct(ctx context.Context, batchSize int) (int64, error) {
	ctx, cancel := m.storeCtx(ctx)
	defer cancel()

	count, err := m.tokens.CleanupDefunct(ctx, batchSize, m.now().UTC())
	if err != nil {
		return 0, infraErr("cleanup defunct tokens", err)
	}
	return count, nil
}

// ValidateToken returns the token record iff it exists, is not revoked
// and its access expiry has not passed; otherwise nil. It runs on every
// protected request and never mutates anything.
func (m *SessionManager) ValidateToken(ctx context.Context, accessToken string) (*TokenRecord, error) {
	ctx, cancel := m.storeCtx(ctx)
	defer cancel()

	rec, err := m.tokens.FindByAccessToken(ctx, accessToken)
	if err != nil {
		return nil, infraErr("validate token", err)
	}
	if rec == nil || !rec.Active(m.now().UTC()) {
		return nil, nil
	}
	return rec, nil
}

func (m *SessionManager) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.cfg.StoreTimeout)
}
