package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/model"
)

// DefaultTransactionTypes is the canonical CNAB type lookup. Sign is the only place
// where a type's effect on a balance is defined.
var DefaultTransactionTypes = []model.TransactionType{
	{Code: 1, Description: "Debit", Nature: string(entity.NatureIncome), Sign: 1},
	{Code: 2, Description: "Boleto", Nature: string(entity.NatureExpense), Sign: -1},
	{Code: 3, Description: "Financing", Nature: string(entity.NatureExpense), Sign: -1},
	{Code: 4, Description: "Credit", Nature: string(entity.NatureIncome), Sign: 1},
	{Code: 5, Description: "Loan receipt", Nature: string(entity.NatureIncome), Sign: 1},
	{Code: 6, Description: "Sales", Nature: string(entity.NatureIncome), Sign: 1},
	{Code: 7, Description: "TED receipt", Nature: string(entity.NatureIncome), Sign: 1},
	{Code: 8, Description: "DOC receipt", Nature: string(entity.NatureIncome), Sign: 1},
	{Code: 9, Description: "Rent", Nature: string(entity.NatureExpense), Sign: -1},
}

// DefaultFileStatuses returns one lookup row per file status
func DefaultFileStatuses() []model.FileStatus {
	rows := make([]model.FileStatus, len(entity.FileStatuses))
	for i, s := range entity.FileStatuses {
		rows[i] = model.FileStatus{
			ID:         uint8(i + 1),
			Name:       string(s),
			IsTerminal: s.IsTerminal(),
		}
	}
	return rows
}

// SeedTransactionTypes upserts the type lookup
func SeedTransactionTypes(ctx context.Context, db *gorm.DB) error {
	rows := make([]model.TransactionType, len(DefaultTransactionTypes))
	copy(rows, DefaultTransactionTypes)

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "nature", "sign"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to seed transaction types: %w", err)
	}
	return nil
}

// SeedFileStatuses upserts the file status lookup
func SeedFileStatuses(ctx context.Context, db *gorm.DB) error {
	rows := DefaultFileStatuses()

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "is_terminal"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to seed file statuses: %w", err)
	}
	return nil
}
