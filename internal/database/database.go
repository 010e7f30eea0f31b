package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrStorageUnavailable is returned when the store cannot be opened or created.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Config selects the engine and the data source to open.
type Config struct {
	Driver string // "sqlite" or "postgres"
	DSN    string // File path for sqlite
}

// Provider opens the store once and hands the same handle to every caller.
// Create one per process and pass it to whatever needs the store.
type Provider struct {
	cfg Config

	mu sync.Mutex
	db *gorm.DB
}

// NewProvider creates a Provider. Nothing is opened until Acquire is called.
func NewProvider(cfg Config) *Provider {
	return &Provider{cfg: cfg}
}

// Acquire returns the shared handle, opening the store on first use.
// A failed open is not cached, so a later call tries again.
func (p *Provider) Acquire() (*gorm.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}

	db, err := open(p.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	p.db = db
	return db, nil
}

// Close releases the underlying connection pool. It is safe to call on a
// Provider that was never opened.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get connection pool: %w", err)
	}
	p.db = nil
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func open(cfg Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(log.Writer(), "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	switch cfg.Driver {
	case "sqlite", "":
		dsn, err := sqliteDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}
		db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %s: %w", cfg.DSN, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get connection pool: %w", err)
		}
		// One writer: every statement is serialized against the file.
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN makes sure the parent directory of a file database exists and
// adds a busy timeout when the caller did not pass any options.
func sqliteDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("empty sqlite path")
	}
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return dsn, nil
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0o700); err != nil {
		return "", fmt.Errorf("create database directory: %w", err)
	}
	if !strings.Contains(dsn, "?") {
		dsn += "?_busy_timeout=5000"
	}
	return dsn, nil
}
