package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/database/migration"
)

// ErrNotConnected is returned when the manager is used before Connect
var ErrNotConnected = errors.New("database is not connected")

// Manager manages database connections
type Manager struct {
	config            *Config
	db                *gorm.DB
	logger            coreport.Logger
	errorMapper       *ErrorMapper
	connectionMonitor *ConnectionPoolMonitor
	timeProvider      coreport.TimeProvider
	queryObserver     QueryObserver
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		errorMapper:  NewErrorMapper(),
		timeProvider: timeProvider,
	}
}

// WithQueryObserver makes every SQL statement report its timing to observer
func (m *Manager) WithQueryObserver(observer QueryObserver) *Manager {
	m.queryObserver = observer
	return m
}

// Connect establishes a database connection, retrying up to RetryAttempts times
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"host":   m.config.Host,
		"port":   m.config.Port,
		"name":   m.config.Database,
	})

	attempts := m.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	var gormDB *gorm.DB
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			m.logger.Warn("Retrying database connection", map[string]any{
				"attempt": attempt + 1,
				"of":      attempts,
				"delay":   m.config.RetryDelay.String(),
			})
			if sleepErr := m.timeProvider.Sleep(ctx, coreport.Duration(m.config.RetryDelay)); sleepErr != nil {
				return nil, sleepErr
			}
		}

		gormDB, err = m.open(ctx)
		if err == nil {
			break
		}

		m.logger.Error("Failed to connect to database", map[string]any{
			"error":   err.Error(),
			"attempt": attempt + 1,
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
	}

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":         m.config.Driver,
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
		"query_timeout":  m.config.QueryTimeout.String(),
	})

	m.db = gormDB
	m.connectionMonitor = NewConnectionPoolMonitor(m, m.logger)
	if err := m.connectionMonitor.Start(30 * time.Second); err != nil {
		m.logger.Warn("Failed to start connection pool monitoring", map[string]any{"error": err.Error()})
	}

	return m.db, nil
}

func (m *Manager) open(ctx context.Context) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch m.config.Driver {
	case DriverPostgres:
		dialector = postgres.Open(m.config.DSN())
	case DriverSQLite:
		dialector = sqlite.Open(m.config.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", m.config.Driver)
	}

	dbLogger := NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowThreshold)
	if m.queryObserver != nil {
		dbLogger = dbLogger.WithObserver(m.queryObserver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: dbLogger,
		NowFunc: func() time.Time {
			return m.timeProvider.Now().UTC()
		},
		PrepareStmt: m.config.Driver == DriverPostgres,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	maxOpen := m.config.MaxOpenConns
	if m.config.Driver == DriverSQLite {
		// one writer at a time, and a private :memory: database per connection
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(min(m.config.MaxIdleConns, maxOpen))
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, m.config.QueryTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gormDB, nil
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Ping checks that the database answers within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return ErrNotConnected
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return m.errorMapper.MapError(err, "ping")
	}

	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()
	return m.errorMapper.MapError(sqlDB.PingContext(ctx), "ping")
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}

	m.logger.Info("Closing database connection", nil)

	if m.connectionMonitor != nil {
		m.connectionMonitor.Stop()
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	return sqlDB.Close()
}

// WithTimeout returns a context with timeout for database operations
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.config.QueryTimeout)
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() *UnitOfWork {
	return NewUnitOfWork(m.db, m.logger, m.timeProvider)
}

// Migrate brings the schema and lookup tables up to date
func (m *Manager) Migrate(ctx context.Context) error {
	if m.db == nil {
		return ErrNotConnected
	}
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).MigrateAll(ctx)
}

// PoolMetrics returns the last collected connection pool metrics
func (m *Manager) PoolMetrics() ConnectionPoolMetrics {
	if m.connectionMonitor == nil {
		return ConnectionPoolMetrics{}
	}
	return m.connectionMonitor.GetMetrics()
}
