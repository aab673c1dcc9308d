package database

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	timeprovider "github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/time"
)

// TestDBManager provides a migrated in-memory sqlite database for tests
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestConfig returns a sqlite configuration for an isolated in-memory database
func NewTestConfig() *Config {
	return &Config{
		Driver:          DriverSQLite,
		Database:        ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 0,
		ConnMaxIdleTime: 0,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   1,
	}
}

// NewTestDBManager connects to a fresh in-memory database and migrates it.
// The connection is closed when the test finishes.
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	tp := timeprovider.NewRealTimeProvider()
	config := NewTestConfig()
	manager := NewManager(config, logger, tp)

	ctx := context.Background()
	if _, err := manager.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := manager.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &TestDBManager{
		Manager:      manager,
		Config:       config,
		Logger:       logger,
		TimeProvider: tp,
	}
}

// DB returns the test database
func (m *TestDBManager) DB() *gorm.DB {
	return m.Manager.DB()
}
