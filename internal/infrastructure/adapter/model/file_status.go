package model

// FileStatus is a row of the file status lookup table
type FileStatus struct {
	ID         uint8  `gorm:"primaryKey;autoIncrement:false"`
	Name       string `gorm:"size:20;not null;uniqueIndex"`
	IsTerminal bool   `gorm:"not null;default:false"`
}

// TableName specifies the table name for FileStatus
func (FileStatus) TableName() string {
	return "file_statuses"
}
