package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Service runs the login flow: lockout check, password verification,
// failure bookkeeping, token issuance. The outcome for a wrong password
// and an unknown email is identical.
type Service struct {
	creds    CredentialStore
	guard    *LockoutGuard
	sessions *SessionManager
	cfg      Config
}

func NewService(creds CredentialStore, guard *LockoutGuard, sessions *SessionManager, cfg Config) *Service {
	return &Service{
		creds:    creds,
		guard:    guard,
		sessions: sessions,
		cfg:      cfg.withDefaults(),
	}
}

func (s *Service) Login(ctx context.Context, email, password string, rememberMe bool) (*TokenRecord, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	state, err := s.guard.IsAccountLocked(ctx, email)
	if err != nil {
		return nil, err
	}
	if state.Locked {
		return nil, ErrAccountLocked{Until: *state.Until}
	}

	acct, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if acct == nil || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		result, recordErr := s.guard.RecordFailedAttempt(ctx, email)
		if recordErr != nil {
			return nil, recordErr
		}
		if result.Locked && result.LockedUntil != nil {
			return nil, ErrAccountLocked{Until: *result.LockedUntil}
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.guard.ResetFailedAttempts(ctx, acct.ID); err != nil {
		return nil, err
	}

	return s.sessions.CreateTokenPair(ctx, acct, rememberMe)
}

// Logout revokes the presented access token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	return s.sessions.RevokeToken(ctx, accessToken)
}

func (s *Service) findByEmail(ctx context.Context, email string) (*Account, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	acct, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		return nil, infraErr("lookup account", err)
	}
	return acct, nil
}
