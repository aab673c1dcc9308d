package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment variable read by the loader
const EnvPrefix = "CNAB"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from configs/<CNAB_ENV>.yaml, then applies environment overrides.
// CNAB_CONFIG_DIR, when set, is searched before the default paths.
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// CNAB_DATABASE_PASSWORD overrides database.password, and so on
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found in DotEnvPaths
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for every setting
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 30)  // seconds
	v.SetDefault("server.writeTimeout", 60) // seconds
	v.SetDefault("server.idleTimeout", 60)
	v.SetDefault("server.readHeaderTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 15)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 30)    // seconds
	v.SetDefault("database.slowThreshold", 200)  // milliseconds
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 2) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("storage.dataDir", "./data/uploads")
	v.SetDefault("storage.maxUploadBytes", 10<<20)

	v.SetDefault("processing.workerCount", 4)
	v.SetDefault("processing.queueSize", 100)
	v.SetDefault("processing.maxRetries", 5)
	v.SetDefault("processing.retryInterval", 500)      // milliseconds
	v.SetDefault("processing.maxRetryInterval", 30000) // milliseconds
	v.SetDefault("processing.jitterFactor", 0.2)
	v.SetDefault("processing.errorSummaryLimit", 20)
	v.SetDefault("processing.maxLines", 0)
	v.SetDefault("processing.recoverOnStartup", true)
	v.SetDefault("processing.recoveryBatchSize", 500)
}

// getEnvironment determines the environment from CNAB_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides applies the short-form variables used by deployment manifests
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"DB_DRIVER":    "database.driver",
		"DB_HOST":      "database.host",
		"DB_USERNAME":  "database.username",
		"DB_PASSWORD":  "database.password",
		"DB_NAME":      "database.database",
		"DB_SSL_MODE":  "database.sslMode",
		"SERVER_HOST":  "server.host",
		"LOGGER_LEVEL": "logger.level",
		"DATA_DIR":     "storage.dataDir",
	}
	for name, key := range stringOverrides {
		if value := os.Getenv(EnvPrefix + "_" + name); value != "" {
			v.Set(key, value)
		}
	}

	intOverrides := map[string]string{
		"DB_PORT":           "database.port",
		"DB_MAX_OPEN_CONNS": "database.maxOpenConns",
		"SERVER_PORT":       "server.port",
		"WORKER_COUNT":      "processing.workerCount",
		"QUEUE_SIZE":        "processing.queueSize",
	}
	for name, key := range intOverrides {
		if value := getEnvInt(EnvPrefix+"_"+name, 0); value > 0 {
			v.Set(key, value)
		}
	}
}

// getEnvInt reads an integer environment variable, returning defaultVal when unset or malformed
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts the raw numeric duration settings to their units
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.SlowThreshold = time.Duration(config.Database.SlowThreshold) * time.Millisecond
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Processing.RetryInterval = time.Duration(config.Processing.RetryInterval) * time.Millisecond
	config.Processing.MaxRetryInterval = time.Duration(config.Processing.MaxRetryInterval) * time.Millisecond
}
