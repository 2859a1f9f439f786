package auth

import "time"

// Account is the credential row for a clinic staff login. Only the
// failure counter and lock timestamp are mutated here; account creation
// and profile management live in the user-management service.
type Account struct {
	ID             string
	Email          string
	PasswordHash   string
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Locked reports whether the account lock is in force at the given instant.
func (a *Account) Locked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}

// TokenRecord is one issued access/refresh pair. At most one non-revoked,
// non-access-expired record exists per account.
type TokenRecord struct {
	ID               string
	AccountID        string
	AccessToken      string
	RefreshToken     string
	Revoked          bool
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	CreatedAt        time.Time
}

// Active reports whether the record still authorizes requests.
func (t *TokenRecord) Active(now time.Time) bool {
	return !t.Revoked && now.Before(t.AccessExpiresAt)
}

// Defunct reports whether the record is eligible for hard deletion:
// revoked, or past either expiry.
func (t *TokenRecord) Defunct(now time.Time) bool {
	return t.Revoked || now.After(t.AccessExpiresAt) || now.After(t.RefreshExpiresAt)
}

// AttemptResult is the uniform response shape for a recorded login
// failure. Unknown emails produce the same shape as known ones.
type AttemptResult struct {
	Locked            bool       `json:"locked"`
	LockedUntil       *time.Time `json:"lock_until,omitempty"`
	AttemptsRemaining int        `json:"attempts_remaining"`
}

// LockState answers "may this account attempt a login right now".
type LockState struct {
	Locked           bool       `json:"locked"`
	MinutesRemaining int        `json:"minutes_remaining,omitempty"`
	Until            *time.Time `json:"-"`
}

// SecurityStatus is the composed administrative read for one account.
type SecurityStatus struct {
	Email             string     `json:"email"`
	FailedAttempts    int        `json:"failed_attempts"`
	Locked            bool       `json:"locked"`
	LockedUntil       *time.Time `json:"lock_until,omitempty"`
	AttemptsRemaining int        `json:"attempts_remaining"`
}

// AccessGrant is the result of an access-token refresh.
type AccessGrant struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenPair is the login response body.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
