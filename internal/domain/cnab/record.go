package cnab

import (
	"time"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

// Record is one decoded CNAB line
type Record struct {
	LineNumber int
	TypeCode   int
	Date       time.Time
	Amount     int64 // minor units
	SubjectID  string
	CardRef    string
	Time       entity.TimeOfDay
	OwnerName  string
	StoreName  string
}

// StoreKey returns the business key of the store the record belongs to
func (r Record) StoreKey() entity.StoreKey {
	return entity.StoreKey{Name: r.StoreName, OwnerName: r.OwnerName}
}
