package postgres

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"waitlist.backend/internal/config"
	"waitlist.backend/pkg/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

var (
	sqlOpen = sql.Open
	dbPing  = func(db *sql.DB) error { return db.Ping() }

	sharedOnce sync.Once
	sharedDB   *gorm.DB
	sharedErr  error
)

// NewConnection opens a pooled PostgreSQL handle through lib/pq and wraps it in GORM
func NewConnection(cfg config.DatabaseConfig) (*gorm.DB, error) {
	sqlDB, err := sqlOpen("postgres", cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := dbPing(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:          false,
		DisableAutomaticPing: true,
		Logger:               newGormLogger(zap.NewStdLog(logger.GetLogger())),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}
	return db, nil
}

// Shared returns the process-wide handle, connecting on first use.
// Concurrent first calls share a single connection attempt.
func Shared(cfg config.DatabaseConfig) (*gorm.DB, error) {
	sharedOnce.Do(func() {
		sharedDB, sharedErr = NewConnection(cfg)
	})
	return sharedDB, sharedErr
}

// newGormLogger reports slow queries and errors through w. Lookups that
// find no row are expected and stay silent.
func newGormLogger(w gormlogger.Writer) gormlogger.Interface {
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
