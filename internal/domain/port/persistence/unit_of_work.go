package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating transaction operations
// across multiple repositories to maintain data consistency
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context.
	// Rolling back an already finished transaction is not an error.
	Rollback(ctx context.Context) error

	// GetFileRepository returns a file repository bound to the current transaction
	GetFileRepository(ctx context.Context) FileRepository

	// GetStoreRepository returns a store repository bound to the current transaction
	GetStoreRepository(ctx context.Context) StoreRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetTransactionTypeRepository returns the type lookup repository
	GetTransactionTypeRepository(ctx context.Context) TransactionTypeRepository
}
