package auth

import (
	"context"
	"time"
)

// LockoutGuard tracks failed logins per account and enforces the hard
// lockout window. It holds no in-process state; every mutation is an
// atomic store operation, so concurrent request workers stay correct.
//
// The guard never errors on an unknown email. It answers with the same
// result shape as for a known account, so callers cannot probe which
// emails exist.
type LockoutGuard struct {
	creds CredentialStore
	cfg   Config
	now   func() time.Time
}

func NewLockoutGuard(creds CredentialStore, cfg Config) *LockoutGuard {
	return &LockoutGuard{
		creds: creds,
		cfg:   cfg.withDefaults(),
		now:   time.Now,
	}
}

// WithClock replaces the time source. Tests use it to cross lock windows
// without sleeping.
func (g *LockoutGuard) WithClock(now func() time.Time) *LockoutGuard {
	g.now = now
	return g
}

// RecordFailedAttempt increments the account's failure counter and locks
// it once the counter reaches the configured threshold. Unknown emails
// mutate nothing and report zero attempts remaining.
func (g *LockoutGuard) RecordFailedAttempt(ctx context.Context, email string) (AttemptResult, error) {
	ctx, cancel := g.storeCtx(ctx)
	defer cancel()

	now := g.now().UTC()
	acct, err := g.creds.RegisterFailure(ctx, email, g.cfg.MaxAttempts, g.cfg.LockDuration, now)
	if err != nil {
		return AttemptResult{}, infraErr("record failed attempt", err)
	}
	if acct == nil {
		return AttemptResult{}, nil
	}

	if acct.Locked(now) {
		return AttemptResult{Locked: true, LockedUntil: acct.LockedUntil}, nil
	}

	remaining := g.cfg.MaxAttempts - acct.FailedAttempts
	if remaining < 0 {
		remaining = 0
	}
	return AttemptResult{AttemptsRemaining: remaining}, nil
}

// ResetFailedAttempts clears the failure counter and any lock. Call only
// after a verified successful authentication.
func (g *LockoutGuard) ResetFailedAttempts(ctx context.Context, accountID string) error {
	ctx, cancel := g.storeCtx(ctx)
	defer cancel()

	if _, err := g.creds.ResetLockState(ctx, accountID); err != nil {
		return infraErr("reset failed attempts", err)
	}
	return nil
}

// IsAccountLocked reports whether the account may attempt a login. An
// expired lock is cleared in place, so no background sweeper is needed.
func (g *LockoutGuard) IsAccountLocked(ctx context.Context, email string) (LockState, error) {
	ctx, cancel := g.storeCtx(ctx)
	defer cancel()

	acct, err := g.creds.FindByEmail(ctx, email)
	if err != nil {
		return LockState{}, infraErr("lockout check", err)
	}
	if acct == nil || acct.LockedUntil == nil {
		return LockState{}, nil
	}

	now := g.now().UTC()
	if !acct.LockedUntil.After(now) {
		if err := g.creds.ClearExpiredLock(ctx, acct.ID, now); err != nil {
			return LockState{}, infraErr("clear expired lock", err)
		}
		return LockState{}, nil
	}

	return LockState{
		Locked:           true,
		MinutesRemaining: ceilMinutes(acct.LockedUntil.Sub(now)),
		Until:            acct.LockedUntil,
	}, nil
}

// BackoffDelay is the retry delay a client should honor after n
// consecutive failures: base * 2^(n-1), capped. Pure function.
func (g *LockoutGuard) BackoffDelay(failedAttempts int) time.Duration {
	if failedAttempts < 1 {
		failedAttempts = 1
	}
	delay := g.cfg.BackoffBase
	for i := 1; i < failedAttempts; i++ {
		delay *= 2
		if delay >= g.cfg.BackoffCap {
			return g.cfg.BackoffCap
		}
	}
	if delay > g.cfg.BackoffCap {
		return g.cfg.BackoffCap
	}
	return delay
}

// UnlockAccount is the administrative override. It unconditionally clears
// the counter and lock, and reports false when the account does not exist.
func (g *LockoutGuard) UnlockAccount(ctx context.Context, accountID string) (bool, error) {
	ctx, cancel := g.storeCtx(ctx)
	defer cancel()

	found, err := g.creds.ResetLockState(ctx, accountID)
	if err != nil {
		return false, infraErr("unlock account", err)
	}
	return found, nil
}

// ClearLapsedLocks clears every expired lock in one pass, for the
// maintenance sweep. Reads already clear lapsed locks lazily; this keeps
// rarely-read accounts from carrying stale lock rows forever.
func (g *LockoutGuard) ClearLapsedLocks(ctx context.Context) (int64, error) {
	ctx, cancel := g.storeCtx(ctx)
	defer cancel()

	count, err := g.creds.ClearAllExpiredLocks(ctx, g.now().UTC())
	if err != nil {
		return 0, infraErr("clear lapsed locks", err)
	}
	return count, nil
}

// SecurityStatus is a side-effect-free composed read. An expired lock is
// reported as already cleared; unknown emails produce the same shape as a
// clean account.
func (g *LockoutGuard) SecurityStatus(ctx context.Context, email string) (SecurityStatus, error) {
	ctx, cancel := g.storeCtx(ctx)
	defer cancel()

	status := SecurityStatus{Email: email, AttemptsRemaining: g.cfg.MaxAttempts}

	acct, err := g.creds.FindByEmail(ctx, email)
	if err != nil {
		return SecurityStatus{}, infraErr("security status", err)
	}
	if acct == nil {
		return status, nil
	}

	now := g.now().UTC()
	if acct.Locked(now) {
		status.FailedAttempts = acct.FailedAttempts
		status.Locked = true
		status.LockedUntil = acct.LockedUntil
		status.AttemptsRemaining = 0
		return status, nil
	}
	if acct.LockedUntil != nil {
		// Lock has lapsed; report the post-clear view.
		return status, nil
	}

	status.FailedAttempts = acct.FailedAttempts
	status.AttemptsRemaining = g.cfg.MaxAttempts - acct.FailedAttempts
	if status.AttemptsRemaining < 0 {
		status.AttemptsRemaining = 0
	}
	return status, nil
}

func (g *LockoutGuard) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, g.cfg.StoreTimeout)
}
