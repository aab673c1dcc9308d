package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/model"
)

// TransactionTypeRepository reads the transaction type lookup table
type TransactionTypeRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionTypeRepository creates a new TransactionTypeRepository instance
func NewTransactionTypeRepository(db *gorm.DB, logger coreport.Logger) *TransactionTypeRepository {
	return &TransactionTypeRepository{db: db, logger: logger}
}

var _ persistence.TransactionTypeRepository = (*TransactionTypeRepository)(nil)

func (r *TransactionTypeRepository) modelToEntity(m *model.TransactionType) entity.TransactionType {
	return entity.TransactionType{
		Code:        m.Code,
		Description: m.Description,
		Nature:      entity.Nature(m.Nature),
		Sign:        int(m.Sign),
	}
}

// List returns every type ordered by code
func (r *TransactionTypeRepository) List(ctx context.Context) ([]entity.TransactionType, error) {
	var typeModels []model.TransactionType
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&typeModels).Error; err != nil {
		r.logger.Error("Failed to list transaction types", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	types := make([]entity.TransactionType, len(typeModels))
	for i := range typeModels {
		types[i] = r.modelToEntity(&typeModels[i])
	}
	return types, nil
}

// GetByCode returns a single type
func (r *TransactionTypeRepository) GetByCode(ctx context.Context, code int) (*entity.TransactionType, error) {
	var typeModel model.TransactionType
	err := r.db.WithContext(ctx).First(&typeModel, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: code %d", errs.ErrTransactionTypeNotFound, code)
	}
	if err != nil {
		r.logger.Error("Failed to get transaction type", map[string]any{
			"code":  code,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	t := r.modelToEntity(&typeModel)
	return &t, nil
}
