package store

import (
	"context"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/usecase"
)

// StoreUseCase answers balance and statement queries
type StoreUseCase struct {
	stores       persistence.StoreRepository
	transactions persistence.TransactionRepository
	types        persistence.TransactionTypeRepository
	logger       coreport.Logger
}

// NewStoreUseCase creates a new StoreUseCase
func NewStoreUseCase(
	stores persistence.StoreRepository,
	transactions persistence.TransactionRepository,
	types persistence.TransactionTypeRepository,
	logger coreport.Logger,
) *StoreUseCase {
	return &StoreUseCase{
		stores:       stores,
		transactions: transactions,
		types:        types,
		logger:       logger,
	}
}

var _ usecase.StoreUseCase = (*StoreUseCase)(nil)

// ListBalances returns every store with its balance
func (u *StoreUseCase) ListBalances(ctx context.Context) ([]entity.StoreBalance, error) {
	balances, err := u.stores.ListBalances(ctx)
	if err != nil {
		return nil, err
	}

	u.logger.Debug("Store balances listed", map[string]any{"store_count": len(balances)})
	return balances, nil
}

// GetStatement returns a store with its transactions and the balance they add up to
func (u *StoreUseCase) GetStatement(ctx context.Context, storeID uint64) (*entity.StoreStatement, error) {
	store, err := u.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	transactions, err := u.transactions.ListByStoreID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	rows, err := u.types.List(ctx)
	if err != nil {
		return nil, err
	}
	types := entity.NewTransactionTypes(rows)

	balance, err := types.Balance(transactions)
	if err != nil {
		u.logger.Error("Statement references an unknown transaction type", map[string]any{
			"store_id": storeID,
			"error":    err.Error(),
		})
		return nil, err
	}

	u.logger.Info("Store statement retrieved", map[string]any{
		"store_id":          storeID,
		"transaction_count": len(transactions),
		"balance":           entity.FormatMinorUnits(balance),
	})

	return &entity.StoreStatement{
		StoreBalance: entity.StoreBalance{
			Store:            *store,
			Balance:          balance,
			TransactionCount: int64(len(transactions)),
		},
		Transactions: transactions,
		Types:        types,
	}, nil
}
