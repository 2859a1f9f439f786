package auth

//go:generate mockgen -destination=../mocks/mock_stores.go -package=mocks clinic-auth/internal/auth CredentialStore,TokenStore

import (
	"context"
	"time"
)

// CredentialStore persists accounts. Lookups return (nil, nil) when no row
// matches; a non-nil error always means the store itself failed.
//
// RegisterFailure must be atomic per account: concurrent calls may never
// both observe the same stale counter.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)

	// RegisterFailure increments the failure counter and, once it reaches
	// threshold, stamps locked_until = now + lockFor. Returns the updated
	// account, or nil when the email is unknown.
	RegisterFailure(ctx context.Context, email string, threshold int, lockFor time.Duration, now time.Time) (*Account, error)

	// ResetLockState zeroes failed_attempts and clears locked_until.
	// Returns false when the account does not exist.
	ResetLockState(ctx context.Context, accountID string) (bool, error)

	// ClearExpiredLock clears both lock fields iff locked_until has passed.
	ClearExpiredLock(ctx context.Context, accountID string, now time.Time) error

	// ClearAllExpiredLocks clears the lock fields on every account whose
	// lock has lapsed. Returns the count cleared.
	ClearAllExpiredLocks(ctx context.Context, now time.Time) (int64, error)
}

// TokenStore persists issued token pairs.
//
// ReplaceActive must be atomic: revoking the account's active rows and
// inserting the replacement happen as one unit, so two concurrent logins
// can never both end up holding an active session.
type TokenStore interface {
	Create(ctx context.Context, rec *TokenRecord) error
	FindByAccessToken(ctx context.Context, accessToken string) (*TokenRecord, error)
	FindByRefreshToken(ctx context.Context, refreshToken string) (*TokenRecord, error)

	// QueryActive returns the non-revoked, non-access-expired rows for an
	// account.
	QueryActive(ctx context.Context, accountID string, now time.Time) ([]TokenRecord, error)

	// RevokeActive marks the account's active rows revoked, sparing at most
	// one row identified by its access token. Returns the count affected.
	RevokeActive(ctx context.Context, accountID, exceptAccessToken string, now time.Time) (int64, error)

	// RevokeByAccessToken marks the matching row revoked. Absence of a
	// match is not an error.
	RevokeByAccessToken(ctx context.Context, accessToken string) error

	// UpdateAccess swaps the access token and its expiry in place, leaving
	// the refresh columns untouched.
	UpdateAccess(ctx context.Context, id, accessToken string, expiresAt time.Time) error

	// DeleteDefunct hard-deletes the account's rows that are revoked or
	// past either expiry. Returns the count deleted.
	DeleteDefunct(ctx context.Context, accountID string, now time.Time) (int64, error)

	// ReplaceActive atomically revokes every active row for rec.AccountID
	// and inserts rec.
	ReplaceActive(ctx context.Context, rec *TokenRecord) error

	// CleanupDefunct batch-deletes defunct rows across all accounts.
	CleanupDefunct(ctx context.Context, batchSize int, now time.Time) (int64, error)
}
