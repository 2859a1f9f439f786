package auth

import (
	"context"
	"net/http"

	"github.com/getsentry/sentry-go"
)

type contextKey string

const accountIDKey contextKey = "account_id"

// AccountIDFromContext returns the authenticated account id set by
// Middleware, or "" when the request was not authenticated.
func AccountIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(accountIDKey).(string)
	return id
}

// Middleware gates a handler behind a valid access token. Tokens are
// opaque: every request is checked against the store, so a revoked
// session dies immediately. A store failure is a 500, never a pass.
func Middleware(sessions *SessionManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken := bearerToken(r)
		if accessToken == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		rec, err := sessions.ValidateToken(r.Context(), accessToken)
		if err != nil {
			sentry.CaptureException(err)
			writeError(w, http.StatusInternalServerError, "failed to validate token")
			return
		}
		if rec == nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey, rec.AccountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
