package auth

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid covers not-found, revoked and expired tokens
	// uniformly so a caller cannot distinguish the reason.
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// ErrAccountLocked is returned while a lockout window is in force.
type ErrAccountLocked struct {
	Until time.Time
}

func (e ErrAccountLocked) Error() string {
	return "account temporarily locked"
}

// MinutesRemaining reports the lock time left, rounded up, never below 1.
func (e ErrAccountLocked) MinutesRemaining(now time.Time) int {
	return ceilMinutes(e.Until.Sub(now))
}

func ceilMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	minutes := int((d + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func infraErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
