package model

import (
	"time"
)

// Store represents the database model for stores; (name, owner_name) is the business key
type Store struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:19;not null;uniqueIndex:idx_stores_name_owner,priority:1"`
	OwnerName string    `gorm:"size:14;not null;uniqueIndex:idx_stores_name_owner,priority:2"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the table name for Store
func (Store) TableName() string {
	return "stores"
}
