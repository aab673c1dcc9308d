package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// ErrNoTransaction is returned by Commit and Rollback when the context carries no transaction
var ErrNoTransaction = errors.New("no transaction found in context")

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	errorMapper  *ErrorMapper
	retry        RetryConfig
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		errorMapper:  NewErrorMapper(),
		retry:        DefaultRetryConfig(),
	}
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)

// Begin starts a new database transaction and stores it in the returned context
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	var tx *gorm.DB
	err := RetryOnTransientError(ctx, u.retry, func() error {
		tx = u.db.WithContext(ctx).Begin()
		return tx.Error
	}, u.errorMapper, u.timeProvider, u.logger)
	if err != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": err.Error()})
		return ctx, u.errorMapper.MapError(err, "begin transaction")
	}

	u.logger.Debug("Database transaction started", nil)
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction in the context
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return ErrNoTransaction
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return u.errorMapper.MapError(err, "commit transaction")
	}

	u.logger.Debug("Database transaction committed", nil)
	return nil
}

// Rollback rolls back the transaction in the context. A finished transaction is not an error.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return ErrNoTransaction
	}

	err := tx.Rollback().Error
	if err != nil && (errors.Is(err, gorm.ErrInvalidTransaction) ||
		strings.Contains(err.Error(), "already been committed or rolled back")) {
		u.logger.Debug("Transaction has already been committed or rolled back", nil)
		return nil
	}

	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.logger.Debug("Database transaction rolled back", nil)
	return nil
}

// GetFileRepository returns a file repository in the current transaction
func (u *UnitOfWork) GetFileRepository(ctx context.Context) persistence.FileRepository {
	return repository.NewFileRepository(u.getDbFromContext(ctx), u.logger)
}

// GetStoreRepository returns a store repository in the current transaction
func (u *UnitOfWork) GetStoreRepository(ctx context.Context) persistence.StoreRepository {
	return repository.NewStoreRepository(u.getDbFromContext(ctx), u.logger)
}

// GetTransactionRepository returns a transaction repository in the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// GetTransactionTypeRepository returns the type lookup repository in the current transaction
func (u *UnitOfWork) GetTransactionTypeRepository(ctx context.Context) persistence.TransactionTypeRepository {
	return repository.NewTransactionTypeRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}
