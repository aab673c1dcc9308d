package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

// TransactionRepository defines methods to interact with settlement transactions
type TransactionRepository interface {
	// GetByFileID returns the transactions created from a file, in insertion order
	// Used as the secondary idempotency guard
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	GetByFileID(ctx context.Context, fileID uuid.UUID) ([]*entity.Transaction, error)

	// CountByFileID returns how many transactions reference a file
	CountByFileID(ctx context.Context, fileID uuid.UUID) (int64, error)

	// AddRange inserts transactions in order and sets their sequential IDs
	//
	// Possible errors:
	// - ErrConstraintViolation: If a referenced file, store or type doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	AddRange(ctx context.Context, transactions []*entity.Transaction) error

	// ListByStoreID returns the transactions of a store in chronological order
	ListByStoreID(ctx context.Context, storeID uint64) ([]*entity.Transaction, error)
}
