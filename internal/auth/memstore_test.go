package auth_test

import (
	"context"
	"sync"
	"time"

	"clinic-auth/internal/auth"
)

// fakeCredStore is an in-memory CredentialStore with the same atomicity
// semantics as the Postgres implementation.
type fakeCredStore struct {
	mu      sync.Mutex
	byEmail map[string]*auth.Account
}

func newFakeCredStore(accounts ...*auth.Account) *fakeCredStore {
	s := &fakeCredStore{byEmail: make(map[string]*auth.Account)}
	for _, acct := range accounts {
		s.byEmail[acct.Email] = cloneAccount(acct)
	}
	return s
}

func cloneAccount(acct *auth.Account) *auth.Account {
	if acct == nil {
		return nil
	}
	copied := *acct
	if acct.LockedUntil != nil {
		until := *acct.LockedUntil
		copied.LockedUntil = &until
	}
	return &copied
}

func (s *fakeCredStore) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAccount(s.byEmail[email]), nil
}

func (s *fakeCredStore) FindByID(_ context.Context, id string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.byEmail {
		if acct.ID == id {
			return cloneAccount(acct), nil
		}
	}
	return nil, nil
}

func (s *fakeCredStore) RegisterFailure(_ context.Context, email string, threshold int, lockFor time.Duration, now time.Time) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}

	if acct.Locked(now) {
		return cloneAccount(acct), nil
	}
	if acct.LockedUntil != nil {
		acct.FailedAttempts = 0
		acct.LockedUntil = nil
	}

	acct.FailedAttempts++
	if acct.FailedAttempts >= threshold {
		until := now.Add(lockFor)
		acct.LockedUntil = &until
	}

	return cloneAccount(acct), nil
}

func (s *fakeCredStore) ResetLockState(_ context.Context, accountID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acct := range s.byEmail {
		if acct.ID == accountID {
			acct.FailedAttempts = 0
			acct.LockedUntil = nil
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeCredStore) ClearExpiredLock(_ context.Context, accountID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acct := range s.byEmail {
		if acct.ID == accountID && acct.LockedUntil != nil && !acct.LockedUntil.After(now) {
			acct.FailedAttempts = 0
			acct.LockedUntil = nil
		}
	}
	return nil
}

func (s *fakeCredStore) ClearAllExpiredLocks(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, acct := range s.byEmail {
		if acct.LockedUntil != nil && !acct.LockedUntil.After(now) {
			acct.FailedAttempts = 0
			acct.LockedUntil = nil
			count++
		}
	}
	return count, nil
}

// fakeTokenStore is an in-memory TokenStore. ReplaceActive holds the
// store lock for the whole revoke-then-insert unit, mirroring the
// transactional Postgres implementation.
type fakeTokenStore struct {
	mu      sync.Mutex
	records map[string]*auth.TokenRecord
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{records: make(map[string]*auth.TokenRecord)}
}

func cloneRecord(rec *auth.TokenRecord) *auth.TokenRecord {
	if rec == nil {
		return nil
	}
	copied := *rec
	return &copied
}

func (s *fakeTokenStore) Create(_ context.Context, rec *auth.TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = cloneRecord(rec)
	return nil
}

func (s *fakeTokenStore) FindByAccessToken(_ context.Context, accessToken string) (*auth.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.AccessToken == accessToken {
			return cloneRecord(rec), nil
		}
	}
	return nil, nil
}

func (s *fakeTokenStore) FindByRefreshToken(_ context.Context, refreshToken string) (*auth.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.RefreshToken == refreshToken {
			return cloneRecord(rec), nil
		}
	}
	return nil, nil
}

func (s *fakeTokenStore) QueryActive(_ context.Context, accountID string, now time.Time) ([]auth.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []auth.TokenRecord
	for _, rec := range s.records {
		if rec.AccountID == accountID && rec.Active(now) {
			active = append(active, *rec)
		}
	}
	return active, nil
}

func (s *fakeTokenStore) RevokeActive(_ context.Context, accountID, exceptAccessToken string, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, rec := range s.records {
		if rec.AccountID == accountID && rec.Active(now) && rec.AccessToken != exceptAccessToken {
			rec.Revoked = true
			count++
		}
	}
	return count, nil
}

func (s *fakeTokenStore) RevokeByAccessToken(_ context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.AccessToken == accessToken {
			rec.Revoked = true
		}
	}
	return nil
}

func (s *fakeTokenStore) UpdateAccess(_ context.Context, id, accessToken string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[id]; ok {
		rec.AccessToken = accessToken
		rec.AccessExpiresAt = expiresAt
	}
	return nil
}

func (s *fakeTokenStore) DeleteDefunct(_ context.Context, accountID string, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for id, rec := range s.records {
		if rec.AccountID == accountID && rec.Defunct(now) {
			delete(s.records, id)
			count++
		}
	}
	return count, nil
}

func (s *fakeTokenStore) ReplaceActive(_ context.Context, rec *auth.TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.AccountID == rec.AccountID && !existing.Revoked {
			existing.Revoked = true
		}
	}
	s.records[rec.ID] = cloneRecord(rec)
	return nil
}

func (s *fakeTokenStore) CleanupDefunct(_ context.Context, batchSize int, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if batchSize <= 0 {
		batchSize = 500
	}
	var count int64
	for id, rec := range s.records {
		if count >= int64(batchSize) {
			break
		}
		if rec.Defunct(now) {
			delete(s.records, id)
			count++
		}
	}
	return count, nil
}

func (s *fakeTokenStore) countActive(accountID string, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, rec := range s.records {
		if rec.AccountID == accountID && rec.Active(now) {
			count++
		}
	}
	return count
}
