package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/repository"
)

// ErrorMapper maps database errors raised outside repositories (begin, commit, ping) to domain errors
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError maps a database error to a domain error, keeping the driver message
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrNotFound
	case m.classifier.IsConstraintError(err):
		return fmt.Errorf("%w: %s: %s", errs.ErrConstraintViolation, operation, err.Error())
	default:
		return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
	}
}

// IsRetryable reports whether an operation failing with err may succeed when retried
func (m *ErrorMapper) IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return m.classifier.IsLockError(err) || m.classifier.IsTransientError(err)
}
