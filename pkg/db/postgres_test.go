package db

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Test helpers to avoid linter errors for unchecked os.Setenv/Unsetenv
func testSetenv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("Failed to set env var %s: %v", key, err)
	}
}

func testUnsetenv(t *testing.T, key string) {
	t.Helper()
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("Failed to unset env var %s: %v", key, err)
	}
}

func clearDBEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_SSLMODE", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
		"DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME",
	}
	for _, key := range envVars {
		testUnsetenv(t, key)
	}
}

func TestNewConfigFromEnv_AllDefaults(t *testing.T) {
	clearDBEnv(t)

	cfg := NewConfigFromEnv()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "progression_engine", cfg.Database)
	assert.Equal(t, "postgres", cfg.User)
	assert.Equal(t, "", cfg.Password)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 300*time.Second, cfg.ConnMaxLifetime)
	assert.Equal(t, 300*time.Second, cfg.ConnMaxIdleTime)
}

func TestNewConfigFromEnv_CustomValues(t *testing.T) {
	clearDBEnv(t)
	testSetenv(t, "DB_HOST", "db.example.com")
	testSetenv(t, "DB_PORT", "5433")
	testSetenv(t, "DB_NAME", "test_db")
	testSetenv(t, "DB_USER", "testuser")
	testSetenv(t, "DB_PASSWORD", "testpass")
	testSetenv(t, "DB_SSLMODE", "require")
	testSetenv(t, "DB_MAX_OPEN_CONNS", "50")
	defer clearDBEnv(t)

	cfg := NewConfigFromEnv()

	assert.Equal(t, "db.example.com", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "test_db", cfg.Database)
	assert.Equal(t, "testuser", cfg.User)
	assert.Equal(t, "testpass", cfg.Password)
	assert.Equal(t, "require", cfg.SSLMode)
	assert.Equal(t, 50, cfg.MaxOpenConns)
}

func TestNewConfigFromEnv_InvalidIntFallsBack(t *testing.T) {
	clearDBEnv(t)
	testSetenv(t, "DB_PORT", "not-a-number")
	defer clearDBEnv(t)

	cfg := NewConfigFromEnv()
	assert.Equal(t, 5432, cfg.Port)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Host:     "localhost",
		Port:     5432,
		Database: "progression_engine",
		User:     "postgres",
		Password: "secret",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "dbname=progression_engine")
	assert.Contains(t, dsn, "user=postgres")
	assert.Contains(t, dsn, "password=secret")
	assert.Contains(t, dsn, "sslmode=disable")
}
