package model

import (
	"time"

	"github.com/google/uuid"
)

// File represents the database model for uploaded settlement files
type File struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OriginalName   string     `gorm:"size:255;not null"`
	SizeBytes      int64      `gorm:"not null"`
	StorageLocator string     `gorm:"size:512;not null"`
	Checksum       string     `gorm:"size:64"`
	OwnerUserID    string     `gorm:"size:128;not null;index"`
	Status         string     `gorm:"size:20;not null;index:idx_files_status_uploaded,priority:1"`
	ErrorMessage   string     `gorm:"type:text"`
	UploadedAt     time.Time  `gorm:"not null;index:idx_files_status_uploaded,priority:2"`
	CompletedAt    *time.Time
	UpdatedAt      time.Time `gorm:"not null"`

	StatusRef FileStatus `gorm:"foreignKey:Status;references:Name;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName specifies the table name for File
func (File) TableName() string {
	return "files"
}
