package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"

	"clinic-auth/internal/observability"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const maxJSONBodyBytes = 1 << 20

type Handler struct {
	service  *Service
	guard    *LockoutGuard
	sessions *SessionManager
	hints    *failureHints
}

func NewHandler(service *Service, guard *LockoutGuard, sessions *SessionManager) *Handler {
	return &Handler{
		service:  service,
		guard:    guard,
		sessions: sessions,
		hints:    newFailureHints(),
	}
}

const (
	failureHintWindow = 15 * time.Minute
	failureHintMaxIPs = 5000
)

// failureHints counts recent failed logins per client IP. Keying the
// backoff hint on the caller rather than the account keeps the failure
// response identical whether or not the email resolves to an account.
type failureHints struct {
	mu   sync.Mutex
	byIP map[string]ipFailures
}

type ipFailures struct {
	count int
	last  time.Time
}

func newFailureHints() *failureHints {
	return &failureHints{byIP: make(map[string]ipFailures)}
}

func (f *failureHints) bump(ip string, now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry := f.byIP[ip]
	if now.Sub(entry.last) > failureHintWindow {
		entry.count = 0
	}
	entry.count++
	entry.last = now
	f.byIP[ip] = entry

	if len(f.byIP) > failureHintMaxIPs {
		threshold := now.Add(-failureHintWindow)
		for key, value := range f.byIP {
			if value.last.Before(threshold) {
				delete(f.byIP, key)
			}
		}
	}

	return entry.count
}

func (f *failureHints) clear(ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byIP, ip)
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type unlockRequest struct {
	AccountID string `json:"account_id"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	var body loginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	body.Password = strings.TrimSpace(body.Password)
	if !emailRegex.MatchString(body.Email) {
		writeError(w, http.StatusBadRequest, "email format is invalid")
		return
	}
	if len(body.Password) < 8 || len(body.Password) > 200 {
		writeError(w, http.StatusBadRequest, "password format is invalid")
		return
	}

	rec, err := h.service.Login(r.Context(), body.Email, body.Password, body.RememberMe)
	if err != nil {
		h.writeLoginError(w, r, err)
		return
	}

	h.hints.clear(observability.ClientIP(r))
	writeJSON(w, http.StatusOK, TokenPair{
		AccessToken:  rec.AccessToken,
		RefreshToken: rec.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(time.Until(rec.AccessExpiresAt).Seconds()),
	})
}

func (h *Handler) writeLoginError(w http.ResponseWriter, r *http.Request, err error) {
	var lockedErr ErrAccountLocked
	if errors.As(err, &lockedErr) {
		retryAfter := int(time.Until(lockedErr.Until).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeError(w, http.StatusTooManyRequests, "account temporarily locked")
		return
	}

	if errors.Is(err, ErrInvalidCredentials) {
		// The hint is keyed on the client, never on the account, so known
		// and unknown emails answer byte-and-header identically.
		failed := h.hints.bump(observability.ClientIP(r), time.Now().UTC())
		delay := h.guard.BackoffDelay(failed)
		w.Header().Set("Retry-After", strconv.Itoa(int(delay.Seconds())))
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	sentry.CaptureException(err)
	writeError(w, http.StatusInternalServerError, "failed to login")
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	var body refreshRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	body.RefreshToken = strings.TrimSpace(body.RefreshToken)
	grant, err := h.sessions.RefreshAccessToken(r.Context(), body.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrTokenInvalid) {
			writeError(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to refresh token")
		return
	}

	writeJSON(w, http.StatusOK, grant)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	accessToken := bearerToken(r)
	if accessToken == "" {
		writeError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if err := h.service.Logout(r.Context(), accessToken); err != nil {
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SecurityStatus is the administrative read of one account's lockout
// state. Unknown emails answer with the clean-account shape.
func (h *Handler) SecurityStatus(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("email")))
	if !emailRegex.MatchString(email) {
		writeError(w, http.StatusBadRequest, "email format is invalid")
		return
	}

	status, err := h.guard.SecurityStatus(r.Context(), email)
	if err != nil {
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to read security status")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Unlock is the administrative override for a locked account.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	var body unlockRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	body.AccountID = strings.TrimSpace(body.AccountID)
	if body.AccountID == "" {
		writeError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	found, err := h.guard.UnlockAccount(r.Context(), body.AccountID)
	if err != nil {
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to unlock account")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
