package maintenance

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"

	"clinic-auth/internal/auth"
	"clinic-auth/internal/observability"
)

// CleanupHandler runs the periodic sweep: revoked and doubly expired
// token rows are hard-deleted in batches, and lapsed account locks are
// cleared. Invoked by an external cron with a shared secret.
type CleanupHandler struct {
	sessions   *auth.SessionManager
	guard      *auth.LockoutGuard
	logger     *observability.Logger
	cronSecret string
	batchSize  int
}

func NewCleanupHandler(sessions *auth.SessionManager, guard *auth.LockoutGuard, logger *observability.Logger, cronSecret string, batchSize int) *CleanupHandler {
	return &CleanupHandler{
		sessions:   sessions,
		guard:      guard,
		logger:     logger,
		cronSecret: strings.TrimSpace(cronSecret),
		batchSize:  batchSize,
	}
}

func (h *CleanupHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.cronSecret == "" {
		writeError(w, http.StatusServiceUnavailable, "cleanup is not configured")
		return
	}
	if subtle.ConstantTimeCompare([]byte(r.Header.Get("Authorization")), []byte("Bearer "+h.cronSecret)) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid cron secret")
		return
	}

	deleted, err := h.sessions.CleanupAllDefunct(r.Context(), h.batchSize)
	if err != nil {
		sentry.CaptureException(err)
		h.logger.Error("token_cleanup_failed", map[string]any{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "cleanup failed")
		return
	}

	clearedLocks, err := h.guard.ClearLapsedLocks(r.Context())
	if err != nil {
		sentry.CaptureException(err)
		h.logger.Error("lock_cleanup_failed", map[string]any{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "cleanup failed")
		return
	}

	h.logger.Info("cleanup_done", map[string]any{
		"deleted_tokens": deleted,
		"cleared_locks":  clearedLocks,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]int64{
		"deleted_tokens": deleted,
		"cleared_locks":  clearedLocks,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
