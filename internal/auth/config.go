package auth

import "time"

const (
	defaultMaxAttempts   = 5
	defaultLockDuration  = 15 * time.Minute
	defaultAccessTTL     = 15 * time.Minute
	defaultRefreshTTL    = 24 * time.Hour
	defaultRememberMeTTL = 30 * 24 * time.Hour
	defaultBackoffBase   = 2 * time.Second
	defaultBackoffCap    = 60 * time.Second
	defaultStoreTimeout  = 5 * time.Second
)

// Config carries the security thresholds. Zero values fall back to the
// production defaults so tests can shrink windows without sleeping.
type Config struct {
	MaxAttempts   int
	LockDuration  time.Duration
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	RememberMeTTL time.Duration
	BackoffBase   time.Duration
	BackoffCap    time.Duration

	// StoreTimeout bounds every store call so an unhealthy database cannot
	// stall the login or request path.
	StoreTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.LockDuration <= 0 {
		c.LockDuration = defaultLockDuration
	}
	if c.AccessTTL <= 0 {
		c.AccessTTL = defaultAccessTTL
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = defaultRefreshTTL
	}
	if c.RememberMeTTL <= 0 {
		c.RememberMeTTL = defaultRememberMeTTL
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = defaultBackoffBase
	}
	if c.BackoffCap <= 0 {
		c.BackoffCap = defaultBackoffCap
	}
	if c.StoreTimeout <= 0 {
		c.StoreTimeout = defaultStoreTimeout
	}
	return c
}
