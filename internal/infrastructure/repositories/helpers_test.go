package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		wallet_address TEXT PRIMARY KEY,
		is_paid BOOLEAN NOT NULL DEFAULT 0,
		in_waitlist BOOLEAN NOT NULL DEFAULT 0,
		payment_tx_hash TEXT,
		payment_amount TEXT,
		payment_token TEXT,
		chain_id INTEGER,
		created_at DATETIME,
		updated_at DATETIME,
		payment_verified_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		wallet_address TEXT NOT NULL,
		tx_hash TEXT,
		amount TEXT NOT NULL,
		token TEXT NOT NULL,
		chain_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		payment_data TEXT,
		created_at DATETIME,
		confirmed_at DATETIME
	);`)
}

// stepClock replaces nowFunc with a clock that advances one second per call
func stepClock(t *testing.T, start time.Time) {
	t.Helper()
	orig := nowFunc
	current := start
	nowFunc = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	t.Cleanup(func() { nowFunc = orig })
}
