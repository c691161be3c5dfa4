package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := DefaultMySQLConfig()
	dsn := cfg.DSN()

	assert.Contains(t, dsn, "root:rootpassword@tcp(mysql:3306)/appdb")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestDSN_CustomHost(t *testing.T) {
	cfg := DefaultMySQLConfig()
	cfg.Host = "db.internal"
	cfg.Port = 3307
	cfg.DBName = "catalog"

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "@tcp(db.internal:3307)/catalog")
}

func TestRetryBackoff_GrowsExponentially(t *testing.T) {
	for attempt := 0; attempt < 3; attempt++ {
		base := defaultRetryBaseWait << attempt
		wait := retryBackoff(attempt)

		// Jitter stays within ±25% of the base wait.
		assert.GreaterOrEqual(t, wait, time.Duration(float64(base)*0.75))
		assert.LessOrEqual(t, wait, time.Duration(float64(base)*1.25))
	}
}

func TestRetryBackoff_NegativeAttempt(t *testing.T) {
	wait := retryBackoff(-3)
	assert.Greater(t, wait, time.Duration(0))
}
