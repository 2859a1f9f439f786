package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of pgxpool.Pool the repository needs. pgxmock provides
// the same surface for tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository is the Postgres implementation of CredentialStore and
// TokenStore. Both read-modify-write hazards (the failure counter and
// the revoke-then-insert unit) run inside row-locked transactions.
type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

var (
	_ CredentialStore = (*Repository)(nil)
	_ TokenStore      = (*Repository)(nil)
)

const accountColumns = `id, email, password_hash, failed_attempts, locked_until, created_at, updated_at`

func (r *Repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE email = $1
	`, email)

	return scanAccount(row, "query account by email")
}

func (r *Repository) FindByID(ctx context.Context, id string) (*Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
	`, id)

	return scanAccount(row, "query account by id")
}

func scanAccount(row pgx.Row, op string) (*Account, error) {
	var acct Account
	err := row.Scan(&acct.ID, &acct.Email, &acct.PasswordHash,
		&acct.FailedAttempts, &acct.LockedUntil, &acct.CreatedAt, &acct.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &acct, nil
}

// RegisterFailure locks the account row, reconciles an elapsed lock back
// to a clean counter, then increments and compares against the threshold.
// Two concurrent failures serialize on the row lock, so neither can read
// a stale counter.
func (r *Repository) RegisterFailure(ctx context.Context, email string, threshold int, lockFor time.Duration, now time.Time) (*Account, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin failure tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var acct Account
	err = tx.QueryRow(ctx, `
		SELECT id, email, failed_attempts, locked_until
		FROM accounts
		WHERE email = $1
		FOR UPDATE
	`, email).Scan(&acct.ID, &acct.Email, &acct.FailedAttempts, &acct.LockedUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock account row: %w", err)
	}

	if acct.Locked(now) {
		// Lock already in force; nothing to count.
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("commit failure tx: %w", err)
		}
		return &acct, nil
	}
	if acct.LockedUntil != nil {
		// Lock elapsed: the state machine re-opens with a clean counter.
		acct.FailedAttempts = 0
		acct.LockedUntil = nil
	}

	acct.FailedAttempts++
	if acct.FailedAttempts >= threshold {
		until := now.Add(lockFor)
		acct.LockedUntil = &until
	}

	_, err = tx.Exec(ctx, `
		UPDATE accounts
		SET failed_attempts = $2, locked_until = $3, updated_at = $4
		WHERE id = $1
	`, acct.ID, acct.FailedAttempts, acct.LockedUntil, now)
	if err != nil {
		return nil, fmt.Errorf("update failure counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit failure tx: %w", err)
	}

	return &acct, nil
}

func (r *Repository) ResetLockState(ctx context.Context, accountID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET failed_attempts = 0, locked_until = NULL, updated_at = NOW()
		WHERE id = $1
	`, accountID)
	if err != nil {
		return false, fmt.Errorf("reset lock state: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) ClearExpiredLock(ctx context.Context, accountID string, now time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET failed_attempts = 0, locked_until = NULL, updated_at = $2
		WHERE id = $1 AND locked_until IS NOT NULL AND locked_until <= $2
	`, accountID, now)
	if err != nil {
		return fmt.Errorf("clear expired lock: %w", err)
	}

	return nil
}

func (r *Repository) ClearAllExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET failed_attempts = 0, locked_until = NULL, updated_at = $1
		WHERE locked_until IS NOT NULL AND locked_until <= $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("clear expired locks: %w", err)
	}

	return tag.RowsAffected(), nil
}

const tokenColumns = `id, account_id, access_token, refresh_token, revoked, access_expires_at, refresh_expires_at, created_at`

func (r *Repository) Create(ctx context.Context, rec *TokenRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO session_tokens (`+tokenColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rec.ID, rec.AccountID, rec.AccessToken, rec.RefreshToken,
		rec.Revoked, rec.AccessExpiresAt, rec.RefreshExpiresAt, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert token record: %w", err)
	}

	return nil
}

func (r *Repository) FindByAccessToken(ctx context.Context, accessToken string) (*TokenRecord, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+tokenColumns+`
		FROM session_tokens
		WHERE access_token = $1
	`, accessToken)

	return scanTokenRecord(row, "query token by access token")
}

func (r *Repository) FindByRefreshToken(ctx context.Context, refreshToken string) (*TokenRecord, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+tokenColumns+`
		FROM session_tokens
		WHERE refresh_token = $1
	`, refreshToken)

	return scanTokenRecord(row, "query token by refresh token")
}

func scanTokenRecord(row pgx.Row, op string) (*TokenRecord, error) {
	var rec TokenRecord
	err := row.Scan(&rec.ID, &rec.AccountID, &rec.AccessToken, &rec.RefreshToken,
		&rec.Revoked, &rec.AccessExpiresAt, &rec.RefreshExpiresAt, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rec, nil
}

func (r *Repository) QueryActive(ctx context.Context, accountID string, now time.Time) ([]TokenRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tokenColumns+`
		FROM session_tokens
		WHERE account_id = $1 AND NOT revoked AND access_expires_at > $2
		ORDER BY created_at ASC
	`, accountID, now)
	if err != nil {
		return nil, fmt.Errorf("query active tokens: %w", err)
	}
	defer rows.Close()

	var records []TokenRecord
	for rows.Next() {
		var rec TokenRecord
		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.AccessToken, &rec.RefreshToken,
			&rec.Revoked, &rec.AccessExpiresAt, &rec.RefreshExpiresAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan active token: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active tokens: %w", err)
	}

	return records, nil
}

func (r *Repository) RevokeActive(ctx context.Context, accountID, exceptAccessToken string, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE session_tokens
		SET revoked = TRUE
		WHERE account_id = $1
		  AND NOT revoked
		  AND access_expires_at > $2
		  AND ($3 = '' OR access_token <> $3)
	`, accountID, now, exceptAccessToken)
	if err != nil {
		return 0, fmt.Errorf("revoke active tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *Repository) RevokeByAccessToken(ctx context.Context, accessToken string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE session_tokens
		SET revoked = TRUE
		WHERE access_token = $1
	`, accessToken)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (r *Repository) UpdateAccess(ctx context.Context, id, accessToken string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE session_tokens
		SET access_token = $2, access_expires_at = $3
		WHERE id = $1
	`, id, accessToken, expiresAt)
	if err != nil {
		return fmt.Errorf("update access token: %w", err)
	}

	return nil
}

func (r *Repository) DeleteDefunct(ctx context.Context, accountID string, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM session_tokens
		WHERE account_id = $1
		  AND (revoked OR access_expires_at < $2 OR refresh_expires_at < $2)
	`, accountID, now)
	if err != nil {
		return 0, fmt.Errorf("delete defunct tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ReplaceActive serializes logins per account on the account row lock,
// marks every outstanding row revoked, and inserts the replacement. A
// partial unique index on (account_id) WHERE NOT revoked backs the
// single-active-session invariant at the schema level.
func (r *Repository) ReplaceActive(ctx context.Context, rec *TokenRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var accountID string
	err = tx.QueryRow(ctx, `
		SELECT id FROM accounts WHERE id = $1 FOR UPDATE
	`, rec.AccountID).Scan(&accountID)
	if err != nil {
		return fmt.Errorf("lock account for token replace: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE session_tokens
		SET revoked = TRUE
		WHERE account_id = $1 AND NOT revoked
	`, rec.AccountID)
	if err != nil {
		return fmt.Errorf("revoke prior tokens: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO session_tokens (`+tokenColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rec.ID, rec.AccountID, rec.AccessToken, rec.RefreshToken,
		rec.Revoked, rec.AccessExpiresAt, rec.RefreshExpiresAt, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert replacement token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace tx: %w", err)
	}

	return nil
}

func (r *Repository) CleanupDefunct(ctx context.Context, batchSize int, now time.Time) (int64, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	tag, err := r.db.Exec(ctx, `
		WITH stale AS (
			SELECT id
			FROM session_tokens
			WHERE revoked OR access_expires_at < $1 OR refresh_expires_at < $1
			ORDER BY created_at ASC
			LIMIT $2
		)
		DELETE FROM session_tokens t
		USING stale
		WHERE t.id = stale.id
	`, now, batchSize)
	if err != nil {
		return 0, fmt.Errorf("cleanup defunct tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
