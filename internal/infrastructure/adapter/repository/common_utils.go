package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	ForeignKeyError   ErrorType = "foreign_key"
	ConstraintError   ErrorType = "constraint"
	LockError         ErrorType = "lock"
	TransientError    ErrorType = "transient"
)

// ErrorClassifier provides methods to classify database errors.
// Postgres errors are classified by SQLSTATE; sqlite errors only expose their message.
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsForeignKeyError(err):
		return ForeignKeyError
	case c.IsConstraintError(err):
		return ConstraintError
	case c.IsLockError(err):
		return LockError
	case c.IsTransientError(err):
		return TransientError
	}
	return ""
}

// IsDuplicateKeyError checks if the error is a unique constraint violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if code, ok := sqlState(err); ok {
		return code == pgerrcode.UniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint") ||
		strings.Contains(err.Error(), "duplicate key")
}

// IsForeignKeyError checks if the error references a missing parent row
func (c *ErrorClassifier) IsForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	if code, ok := sqlState(err); ok {
		return code == pgerrcode.ForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint")
}

// IsConstraintError checks if the error is any integrity constraint violation
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqlState(err); ok {
		return pgerrcode.IsIntegrityConstraintViolation(code)
	}
	return c.IsDuplicateKeyError(err) || c.IsForeignKeyError(err) ||
		strings.Contains(err.Error(), "CHECK constraint") ||
		strings.Contains(err.Error(), "NOT NULL constraint")
}

// IsLockError checks if the error is due to locking
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqlState(err); ok {
		return code == pgerrcode.DeadlockDetected ||
			code == pgerrcode.SerializationFailure ||
			code == pgerrcode.LockNotAvailable
	}
	return strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "deadlock")
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqlState(err); ok {
		return pgerrcode.IsConnectionException(code) ||
			pgerrcode.IsInsufficientResources(code) ||
			code == pgerrcode.AdminShutdown ||
			code == pgerrcode.CannotConnectNow
	}
	msg := err.Error()
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "EOF")
}

func sqlState(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}
