package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/model"
)

// insertBatchSize bounds the rows per INSERT statement
const insertBatchSize = 500

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(tx *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:        tx.ID,
		FileID:    tx.FileID,
		StoreID:   tx.StoreID,
		TypeCode:  tx.TypeCode,
		Amount:    tx.Amount,
		Date:      tx.Date,
		Time:      tx.Time.String(),
		CardRef:   tx.CardRef,
		SubjectID: tx.SubjectID,
		CreatedAt: tx.CreatedAt,
	}
}

func (r *TransactionRepository) modelToEntity(m *model.Transaction) (*entity.Transaction, error) {
	tod, err := entity.ParseTimeOfDay(m.Time)
	if err != nil {
		r.logger.Error("Stored transaction has an invalid time", map[string]any{
			"transaction_id": m.ID,
			"time":           m.Time,
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}

	return &entity.Transaction{
		ID:        m.ID,
		FileID:    m.FileID,
		StoreID:   m.StoreID,
		TypeCode:  m.TypeCode,
		Amount:    m.Amount,
		Date:      m.Date.UTC(),
		Time:      tod,
		CardRef:   m.CardRef,
		SubjectID: m.SubjectID,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *TransactionRepository) modelsToEntities(models []model.Transaction) ([]*entity.Transaction, error) {
	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		tx, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// GetByFileID returns the transactions created from a file, in insertion order
func (r *TransactionRepository) GetByFileID(ctx context.Context, fileID uuid.UUID) ([]*entity.Transaction, error) {
	var txModels []model.Transaction
	err := r.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("id ASC").
		Find(&txModels).Error
	if err != nil {
		r.logger.Error("Failed to get transactions by file", map[string]any{
			"file_id": fileID.String(),
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return r.modelsToEntities(txModels)
}

// CountByFileID returns how many transactions reference a file
func (r *TransactionRepository) CountByFileID(ctx context.Context, fileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("file_id = ?", fileID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return count, nil
}

// AddRange inserts transactions in order and sets their sequential IDs
func (r *TransactionRepository) AddRange(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	txModels := make([]model.Transaction, len(transactions))
	for i, tx := range transactions {
		txModels[i] = r.entityToModel(tx)
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		CreateInBatches(&txModels, insertBatchSize).Error
	if err != nil {
		r.logger.Error("Failed to insert transactions", map[string]any{
			"file_id": transactions[0].FileID.String(),
			"count":   len(transactions),
			"error":   err.Error(),
		})
		if r.errorClassifier.IsConstraintError(err) {
			return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
		}
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	for i := range txModels {
		transactions[i].ID = txModels[i].ID
	}

	r.logger.Debug("Transactions inserted", map[string]any{
		"file_id": transactions[0].FileID.String(),
		"count":   len(transactions),
	})
	return nil
}

// ListByStoreID returns the transactions of a store in chronological order
func (r *TransactionRepository) ListByStoreID(ctx context.Context, storeID uint64) ([]*entity.Transaction, error) {
	var txModels []model.Transaction
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "time"}}).
		Order("id ASC").
		Find(&txModels).Error
	if err != nil {
		r.logger.Error("Failed to list store transactions", map[string]any{
			"store_id": storeID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return r.modelsToEntities(txModels)
}
