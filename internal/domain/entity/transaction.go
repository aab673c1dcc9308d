package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
)

// TimeOfDay is a wall-clock time without a date
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// IsValid reports whether every component is in range
func (t TimeOfDay) IsValid() bool {
	return t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59
}

// String formats the time as HH:MM:SS
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ParseTimeOfDay parses the HH:MM:SS form produced by String
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04:05", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute(), Second: parsed.Second()}, nil
}

// Transaction is one settlement line attributed to a store; it is immutable once created
type Transaction struct {
	ID        uint64
	FileID    uuid.UUID
	StoreID   uint64
	TypeCode  int
	Amount    int64 // unsigned magnitude in minor units, sign comes from the type lookup
	Date      time.Time
	Time      TimeOfDay
	CardRef   string
	SubjectID string
	CreatedAt time.Time
}

// NewTransaction builds a transaction for a resolved store
func NewTransaction(fileID uuid.UUID, storeID uint64, typeCode int, amount int64, date time.Time, tod TimeOfDay, cardRef, subjectID string, now time.Time) (*Transaction, error) {
	if fileID == uuid.Nil || storeID == 0 {
		return nil, fmt.Errorf("%w: transaction requires a file and a store", errs.ErrInvalidRequest)
	}
	if typeCode < 1 || typeCode > 9 {
		return nil, fmt.Errorf("%w: transaction type must be between 1 and 9", errs.ErrInvalidRequest)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidRequest)
	}

	return &Transaction{
		FileID:    fileID,
		StoreID:   storeID,
		TypeCode:  typeCode,
		Amount:    amount,
		Date:      date,
		Time:      tod,
		CardRef:   cardRef,
		SubjectID: subjectID,
		CreatedAt: now,
	}, nil
}

// OccurredAt combines the transaction date and time in the date's location
func (t *Transaction) OccurredAt() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), t.Time.Hour, t.Time.Minute, t.Time.Second, 0, t.Date.Location())
}
