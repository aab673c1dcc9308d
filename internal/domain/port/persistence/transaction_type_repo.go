package persistence

import (
	"context"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

// TransactionTypeRepository reads the transaction type lookup table
type TransactionTypeRepository interface {
	// List returns every type ordered by code
	List(ctx context.Context) ([]entity.TransactionType, error)

	// GetByCode returns a single type
	//
	// Possible errors:
	// - ErrTransactionTypeNotFound: If the code is not in the lookup table
	// - ErrDatabaseConnection: If database connection fails
	GetByCode(ctx context.Context, code int) (*entity.TransactionType, error)
}
