package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
)

// QueryObserver receives the timing of every SQL statement
type QueryObserver interface {
	ObserveQuery(queryType, table string, elapsed time.Duration, failed bool)
}

// DatabaseLogger is a custom GORM logger that uses our core logger
type DatabaseLogger struct {
	coreLogger    coreport.Logger
	logLevel      logger.LogLevel
	slowThreshold time.Duration
	timeProvider  coreport.TimeProvider
	observer      QueryObserver
}

// NewDatabaseLogger creates a new database logger
func NewDatabaseLogger(coreLogger coreport.Logger, timeProvider coreport.TimeProvider, level string, slowThreshold time.Duration) *DatabaseLogger {
	return &DatabaseLogger{
		coreLogger:    coreLogger.With(map[string]any{"source": "database"}),
		logLevel:      parseGormLogLevel(level),
		slowThreshold: slowThreshold,
		timeProvider:  timeProvider,
	}
}

func parseGormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}

// WithObserver returns a copy of the logger that also reports query timings
func (l *DatabaseLogger) WithObserver(observer QueryObserver) *DatabaseLogger {
	newLogger := *l
	newLogger.observer = observer
	return &newLogger
}

// LogMode sets the log level for the logger
func (l *DatabaseLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

// Info logs info messages
func (l *DatabaseLogger) Info(_ context.Context, msg string, _ ...interface{}) {
	if l.logLevel >= logger.Info {
		l.coreLogger.Info(msg, nil)
	}
}

// Warn logs warn messages
func (l *DatabaseLogger) Warn(_ context.Context, msg string, _ ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.coreLogger.Warn(msg, nil)
	}
}

// Error logs error messages
func (l *DatabaseLogger) Error(_ context.Context, msg string, _ ...interface{}) {
	if l.logLevel >= logger.Error {
		l.coreLogger.Error(msg, nil)
	}
}

// Trace logs SQL operations. Record-not-found is an expected outcome and is not logged as an error.
func (l *DatabaseLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	var elapsed time.Duration
	if l.timeProvider != nil {
		elapsed = l.timeProvider.Since(begin).Std()
	} else {
		elapsed = time.Since(begin)
	}

	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	if l.observer == nil && l.logLevel <= logger.Silent {
		return
	}

	sql, rows := fc()
	queryType := extractQueryType(sql)
	tableName := extractTableName(sql)

	if l.observer != nil {
		l.observer.ObserveQuery(queryType, tableName, elapsed, failed)
	}
	if l.logLevel <= logger.Silent {
		return
	}

	fields := map[string]any{
		"elapsed": elapsed.String(),
		"rows":    rows,
		"sql":     sql,
	}
	if queryType != "" {
		fields["type"] = queryType
	}
	if tableName != "" {
		fields["table"] = tableName
	}

	switch {
	case failed && l.logLevel >= logger.Error:
		fields["error"] = err.Error()
		l.coreLogger.Error("SQL Error", fields)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.logLevel >= logger.Warn:
		l.coreLogger.Warn("Slow SQL Query", fields)
	case l.logLevel >= logger.Info:
		l.coreLogger.Debug("SQL Query", fields)
	}
}

// extractQueryType determines the type of SQL query (SELECT, INSERT, UPDATE, DELETE)
func extractQueryType(sql string) string {
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))

	for _, verb := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sqlUpper, verb) {
			return verb
		}
	}
	return "OTHER"
}

// extractTableName attempts to extract the table name from the SQL query
func extractTableName(sql string) string {
	trimmed := strings.TrimSpace(sql)
	sqlUpper := strings.ToUpper(trimmed)

	var fromIndex int
	switch {
	case strings.HasPrefix(sqlUpper, "UPDATE "):
		fromIndex = len("UPDATE ")
	case strings.Contains(sqlUpper, " INTO "):
		fromIndex = strings.Index(sqlUpper, " INTO ") + len(" INTO ")
	case strings.Contains(sqlUpper, " FROM "):
		fromIndex = strings.Index(sqlUpper, " FROM ") + len(" FROM ")
	default:
		return ""
	}

	if fromIndex > len(trimmed) {
		return ""
	}
	remainder := strings.TrimSpace(trimmed[fromIndex:])
	if end := strings.IndexAny(remainder, " (\n\t"); end >= 0 {
		remainder = remainder[:end]
	}
	return strings.ToLower(strings.Trim(remainder, "\"`"))
}
