package model

import "time"

// MigrationVersion is one applied schema version. The newest row is the current schema.
type MigrationVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"size:20;not null;index"`
	AppliedAt time.Time `gorm:"not null;index"`
	Details   string    `gorm:"type:text"`
}

// TableName specifies the table name for the migration version model
func (MigrationVersion) TableName() string {
	return "migration_versions"
}
