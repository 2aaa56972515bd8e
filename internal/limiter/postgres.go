package limiter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool used by PG.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PG keeps failure counters in the login_attempts table.
// Failures older than window restart the count; reaching maxFails locks the key for lockFor.
type PG struct {
	q        Querier
	window   time.Duration
	maxFails int
	lockFor  time.Duration
	now      func() time.Time
}

// NewPG constructs a PostgreSQL-backed limiter.
func NewPG(q Querier, window time.Duration, maxFails int, lockFor time.Duration) *PG {
	if maxFails <= 0 {
		maxFails = 5
	}
	return &PG{q: q, window: window, maxFails: maxFails, lockFor: lockFor, now: time.Now}
}

// Allow reports whether the key is unlocked.
func (l *PG) Allow(ctx context.Context, key Key) (bool, time.Duration, error) {
	const q = `SELECT locked_until FROM login_attempts WHERE email=$1 AND ip_hash=$2`
	var lockedUntil time.Time
	err := l.q.QueryRow(ctx, q, key.Email, key.IPHash).Scan(&lockedUntil)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return true, 0, nil
	case err != nil:
		return false, 0, err
	}
	if now := l.now(); lockedUntil.After(now) {
		return false, lockedUntil.Sub(now), nil
	}
	return true, 0, nil
}

// Success removes the counter row.
func (l *PG) Success(ctx context.Context, key Key) error {
	const q = `DELETE FROM login_attempts WHERE email=$1 AND ip_hash=$2`
	_, err := l.q.Exec(ctx, q, key.Email, key.IPHash)
	return err
}

// Failure bumps the counter and locks the key once the threshold is reached.
func (l *PG) Failure(ctx context.Context, key Key) (bool, time.Duration, error) {
	const q = `
INSERT INTO login_attempts (email, ip_hash, fail_count, first_failed_at)
VALUES ($1, $2, 1, $3)
ON CONFLICT (email, ip_hash) DO UPDATE SET
  fail_count = CASE WHEN login_attempts.first_failed_at < $4 THEN 1 ELSE login_attempts.fail_count + 1 END,
  first_failed_at = CASE WHEN login_attempts.first_failed_at < $4 THEN $3 ELSE login_attempts.first_failed_at END
RETURNING fail_count`
	now := l.now()
	var fails int
	if err := l.q.QueryRow(ctx, q, key.Email, key.IPHash, now, now.Add(-l.window)).Scan(&fails); err != nil {
		return false, 0, err
	}
	if fails < l.maxFails {
		return false, 0, nil
	}
	const lock = `UPDATE login_attempts SET locked_until=$3 WHERE email=$1 AND ip_hash=$2`
	if _, err := l.q.Exec(ctx, lock, key.Email, key.IPHash, now.Add(l.lockFor)); err != nil {
		return false, 0, err
	}
	return true, l.lockFor, nil
}
