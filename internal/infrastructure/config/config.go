package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Storage     StorageConfig    `mapstructure:"storage"`
	Processing  ProcessingConfig `mapstructure:"processing"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"` // name, or file path for sqlite
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	SlowThreshold   time.Duration `mapstructure:"slowThreshold"`   // milliseconds
	LogLevel        string        `mapstructure:"logLevel"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// StorageConfig contains the object store settings
type StorageConfig struct {
	DataDir        string `mapstructure:"dataDir"`
	MaxUploadBytes int64  `mapstructure:"maxUploadBytes"`
}

// ProcessingConfig contains the worker pool and orchestrator settings
type ProcessingConfig struct {
	WorkerCount       int           `mapstructure:"workerCount"`
	QueueSize         int           `mapstructure:"queueSize"`
	MaxRetries        int           `mapstructure:"maxRetries"`
	RetryInterval     time.Duration `mapstructure:"retryInterval"`    // milliseconds
	MaxRetryInterval  time.Duration `mapstructure:"maxRetryInterval"` // milliseconds
	JitterFactor      float64       `mapstructure:"jitterFactor"`
	ErrorSummaryLimit int           `mapstructure:"errorSummaryLimit"`
	MaxLines          int           `mapstructure:"maxLines"` // 0 means unlimited
	RecoverOnStartup  bool          `mapstructure:"recoverOnStartup"`
	RecoveryBatchSize int           `mapstructure:"recoveryBatchSize"`
}
