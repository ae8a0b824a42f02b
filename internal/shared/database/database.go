package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MuhamadAgungGumelar/smartsales-dashboard-be/internal/shared/utils"
)

// ErrMissingURL is returned when no connection string is configured
var ErrMissingURL = errors.New("DATABASE_URL is empty")

// DB wraps both GORM and the pooled sql.DB underneath it
type DB struct {
	*sql.DB
	GORM *gorm.DB

	log zerolog.Logger
}

// Options tunes the connection pool
type Options struct {
	Debug           bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

func (o *Options) defaults() {
	if o.MaxOpenConns == 0 {
		o.MaxOpenConns = 25
	}
	if o.MaxIdleConns == 0 {
		o.MaxIdleConns = 5
	}
	if o.ConnMaxLifetime == 0 {
		o.ConnMaxLifetime = time.Hour
	}
	if o.PingTimeout == 0 {
		o.PingTimeout = 5 * time.Second
	}
}

// NewDB opens the reporting database. Reports only read, so query logging
// stays at Warn unless Debug is set.
func NewDB(connStr string, opts Options, log zerolog.Logger) (*DB, error) {
	if connStr == "" {
		return nil, ErrMissingURL
	}
	opts.defaults()

	logLevel := logger.Warn
	if opts.Debug {
		logLevel = logger.Info
	}

	gormDB, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), opts.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	utils.LogInfo(log, "✅ Database connected (GORM)!", map[string]interface{}{
		"max_open_conns": opts.MaxOpenConns,
	})
	return &DB{
		DB:   sqlDB,
		GORM: gormDB,
		log:  log,
	}, nil
}

func (db *DB) Close() error {
	db.log.Info().Msg("🔌 Closing database connection...")
	return db.DB.Close()
}
