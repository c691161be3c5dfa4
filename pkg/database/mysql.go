package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBaseWait = time.Second
	retryJitterFraction  = 0.25
)

// MySQLConfig holds MySQL connection configuration.
type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultMySQLConfig returns defaults suitable for the local
// multi-container deployment.
func DefaultMySQLConfig() MySQLConfig {
	return MySQLConfig{
		Host:            "mysql",
		Port:            3306,
		User:            "root",
		Password:        "rootpassword",
		DBName:          "appdb",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// DSN returns the MySQL connection string.
func (c *MySQLConfig) DSN() string {
	dsn := mysql.NewConfig()
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	dsn.User = c.User
	dsn.Passwd = c.Password
	dsn.DBName = c.DBName
	dsn.ParseTime = true
	return dsn.FormatDSN()
}

// retryBackoff returns the wait before the given retry attempt (0-based)
// with exponential growth and ±25% jitter.
func retryBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := defaultRetryBaseWait << attempt                                               // 1s, 2s, 4s
	jitter := time.Duration(float64(base) * retryJitterFraction * (2*rand.Float64() - 1)) // #nosec G404 -- non-cryptographic jitter for retry backoff
	return base + jitter
}

// NewMySQLPool opens a MySQL connection pool with startup retry logic
// (3 attempts, 1s/2s/4s exponential backoff with ±25% jitter).
func NewMySQLPool(ctx context.Context, cfg *MySQLConfig) (*sql.DB, error) {
	return NewMySQLPoolWithLogger(ctx, cfg, nil)
}

// NewMySQLPoolWithLogger is like NewMySQLPool but accepts an optional logger
// for retry warning messages.
func NewMySQLPoolWithLogger(ctx context.Context, cfg *MySQLConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	var lastErr error
	for attempt := 0; attempt < defaultRetryAttempts; attempt++ {
		if err := db.PingContext(ctx); err == nil {
			return db, nil
		} else {
			lastErr = err
		}

		if attempt < defaultRetryAttempts-1 {
			wait := retryBackoff(attempt)
			if logger != nil {
				logger.Warn("mysql ping failed, retrying",
					slog.Int("attempt", attempt+1),
					slog.Int("max_attempts", defaultRetryAttempts),
					slog.Duration("backoff", wait),
					slog.String("error", lastErr.Error()),
				)
			}
			select {
			case <-ctx.Done():
				db.Close()
				return nil, fmt.Errorf("ping mysql: context canceled during retry: %w", ctx.Err())
			case <-time.After(wait):
			}
		}
	}

	db.Close()
	return nil, fmt.Errorf("connect to mysql after %d attempts: %w", defaultRetryAttempts, lastErr)
}
