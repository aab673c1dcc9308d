package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents the database model for settlement transactions
type Transaction struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	FileID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID   uint64    `gorm:"not null;index:idx_transactions_store_occurred,priority:1"`
	TypeCode  int       `gorm:"not null;index"`
	Amount    int64     `gorm:"not null;check:chk_transactions_amount,amount > 0"`
	Date      time.Time `gorm:"type:date;not null;index:idx_transactions_store_occurred,priority:2"`
	Time      string    `gorm:"size:8;not null;index:idx_transactions_store_occurred,priority:3"` // HH:MM:SS
	CardRef   string    `gorm:"size:12;not null"`
	SubjectID string    `gorm:"size:11;not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`

	// Define relationships
	File  File            `gorm:"foreignKey:FileID;references:ID;constraint:OnDelete:CASCADE"`
	Store Store           `gorm:"foreignKey:StoreID;references:ID;constraint:OnDelete:RESTRICT"`
	Type  TransactionType `gorm:"foreignKey:TypeCode;references:Code;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
