package persistence

import (
	"context"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

// StoreRepository defines methods to interact with stores
type StoreRepository interface {
	// GetByNameAndOwner retrieves a store by its business key
	//
	// Possible errors:
	// - ErrStoreNotFound: If no store has the given name and owner
	// - ErrDatabaseConnection: If database connection fails
	GetByNameAndOwner(ctx context.Context, name, ownerName string) (*entity.Store, error)

	// GetByID retrieves a store by its identity
	//
	// Possible errors:
	// - ErrStoreNotFound: If no store has the given ID
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Store, error)

	// Add inserts a new store and sets its ID
	//
	// Possible errors:
	// - ErrDuplicateStore: If another writer created the same business key first
	// - ErrDatabaseConnection: If database connection fails
	Add(ctx context.Context, store *entity.Store) error

	// Update persists the mutable fields of an existing store
	//
	// Possible errors:
	// - ErrStoreNotFound: If the store doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, store *entity.Store) error

	// ListBalances derives the balance of every store from its transactions and the type lookup
	ListBalances(ctx context.Context) ([]entity.StoreBalance, error)
}
