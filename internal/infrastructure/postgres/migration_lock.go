package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vtcwoerden/materiaal-api/internal/application/migration"
)

var _ migration.Locker = (*MigrationLock)(nil)

// migrationLockID is the advisory lock key for migration operations. The
// value never changes so every instance of the service contends on it.
const migrationLockID int64 = 0x7674635f6d696772 // "vtc_migr"

// MigrationLock serializes migration runs with a session-scoped postgres
// advisory lock. It pins one connection from the pool for the lock's
// lifetime, since advisory locks are held per session.
type MigrationLock struct {
	pool *pgxpool.Pool
	conn *pgxpool.Conn
}

// NewMigrationLock builds the lock on the given pool.
func NewMigrationLock(pool *pgxpool.Pool) *MigrationLock {
	return &MigrationLock{pool: pool}
}

// TryLock attempts to take the advisory lock without blocking.
func (l *MigrationLock) TryLock() (bool, error) {
	ctx := context.Background()
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	var got bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, migrationLockID).Scan(&got); err != nil {
		conn.Release()
		return false, fmt.Errorf("try advisory lock: %w", err)
	}
	if !got {
		conn.Release()
		return false, nil
	}
	l.conn = conn
	return true, nil
}

// Unlock releases the advisory lock and returns the pinned connection.
func (l *MigrationLock) Unlock() error {
	if l.conn == nil {
		return nil
	}
	defer func() {
		l.conn.Release()
		l.conn = nil
	}()
	if _, err := l.conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, migrationLockID); err != nil {
		return fmt.Errorf("advisory unlock: %w", err)
	}
	return nil
}
