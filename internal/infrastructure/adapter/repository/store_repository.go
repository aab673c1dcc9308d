package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/model"
)

// StoreRepository implements StoreRepository interface using GORM
type StoreRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewStoreRepository creates a new StoreRepository instance
func NewStoreRepository(db *gorm.DB, logger coreport.Logger) *StoreRepository {
	return &StoreRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

var _ persistence.StoreRepository = (*StoreRepository)(nil)

func (r *StoreRepository) entityToModel(store *entity.Store) model.Store {
	return model.Store{
		ID:        store.ID,
		Name:      store.Name,
		OwnerName: store.OwnerName,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
}

func (r *StoreRepository) modelToEntity(m *model.Store) *entity.Store {
	return &entity.Store{
		ID:        m.ID,
		Name:      m.Name,
		OwnerName: m.OwnerName,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *StoreRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrStoreNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate store", fields)
		return errs.ErrDuplicateStore
	}

	logFields := map[string]any{"error": err.Error()}
	for k, v := range fields {
		logFields[k] = v
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), logFields)

	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByNameAndOwner retrieves a store by its business key
func (r *StoreRepository) GetByNameAndOwner(ctx context.Context, name, ownerName string) (*entity.Store, error) {
	var storeModel model.Store
	err := r.db.WithContext(ctx).
		Where("name = ? AND owner_name = ?", name, ownerName).
		First(&storeModel).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting store by key", err, map[string]any{
			"store_name": name,
			"owner_name": ownerName,
		})
	}

	return r.modelToEntity(&storeModel), nil
}

// GetByID retrieves a store by its identity
func (r *StoreRepository) GetByID(ctx context.Context, id uint64) (*entity.Store, error) {
	var storeModel model.Store
	if err := r.db.WithContext(ctx).First(&storeModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting store", err, map[string]any{"store_id": id})
	}

	return r.modelToEntity(&storeModel), nil
}

// Add inserts a new store. A concurrent insert of the same key is reported as ErrDuplicateStore.
func (r *StoreRepository) Add(ctx context.Context, store *entity.Store) error {
	storeModel := r.entityToModel(store)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "owner_name"}},
			DoNothing: true,
		}).
		Create(&storeModel)

	fields := map[string]any{
		"store_name": store.Name,
		"owner_name": store.OwnerName,
	}
	if result.Error != nil {
		return r.handleDatabaseError("adding store", result.Error, fields)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Store was created concurrently", fields)
		return errs.ErrDuplicateStore
	}

	store.ID = storeModel.ID
	r.logger.Debug("Store created", map[string]any{
		"store_id":   store.ID,
		"store_name": store.Name,
	})
	return nil
}

// Update persists the mutable fields of an existing store
func (r *StoreRepository) Update(ctx context.Context, store *entity.Store) error {
	result := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", store.ID).
		Update("updated_at", store.UpdatedAt)

	if result.Error != nil {
		return r.handleDatabaseError("updating store", result.Error, map[string]any{"store_id": store.ID})
	}
	if result.RowsAffected == 0 {
		return errs.ErrStoreNotFound
	}
	return nil
}

// balanceRow is the per-store aggregate of signed amounts
type balanceRow struct {
	StoreID          uint64
	Balance          int64
	TransactionCount int64
}

// ListBalances derives the balance of every store from its transactions and the type lookup.
// Stores without transactions are listed with a zero balance.
func (r *StoreRepository) ListBalances(ctx context.Context) ([]entity.StoreBalance, error) {
	start := time.Now()
	db := r.db.WithContext(ctx)

	var storeModels []model.Store
	if err := db.Order("name ASC").Order("owner_name ASC").Find(&storeModels).Error; err != nil {
		return nil, r.handleDatabaseError("listing stores", err, nil)
	}

	var rows []balanceRow
	err := db.Table("transactions AS t").
		Select("t.store_id AS store_id, " +
			"CAST(COALESCE(SUM(t.amount * tt.sign), 0) AS BIGINT) AS balance, " +
			"COUNT(t.id) AS transaction_count").
		Joins("JOIN transaction_types AS tt ON tt.code = t.type_code").
		Group("t.store_id").
		Scan(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("aggregating store balances", err, nil)
	}

	byStore := make(map[uint64]balanceRow, len(rows))
	for _, row := range rows {
		byStore[row.StoreID] = row
	}

	balances := make([]entity.StoreBalance, len(storeModels))
	for i := range storeModels {
		row := byStore[storeModels[i].ID]
		balances[i] = entity.StoreBalance{
			Store:            *r.modelToEntity(&storeModels[i]),
			Balance:          row.Balance,
			TransactionCount: row.TransactionCount,
		}
	}

	r.logger.Debug("Store balances aggregated", map[string]any{
		"store_count": len(balances),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return balances, nil
}
