package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
)

// Field limits shared with the CNAB layout
const (
	MaxOwnerNameLength = 14
	MaxStoreNameLength = 19
)

// StoreKey is the business key of a store
type StoreKey struct {
	Name      string
	OwnerName string
}

// String renders the key for logs
func (k StoreKey) String() string {
	return fmt.Sprintf("%s/%s", k.Name, k.OwnerName)
}

// Store is a merchant location; its balance is always derived from transactions
type Store struct {
	ID        uint64
	Name      string
	OwnerName string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStore creates a store for the given business key
func NewStore(key StoreKey, now time.Time) (*Store, error) {
	name := strings.TrimSpace(key.Name)
	owner := strings.TrimSpace(key.OwnerName)

	if name == "" || utf8.RuneCountInString(name) > MaxStoreNameLength {
		return nil, fmt.Errorf("%w: store name must have 1 to %d characters", errs.ErrInvalidRequest, MaxStoreNameLength)
	}
	if owner == "" || utf8.RuneCountInString(owner) > MaxOwnerNameLength {
		return nil, fmt.Errorf("%w: owner name must have 1 to %d characters", errs.ErrInvalidRequest, MaxOwnerNameLength)
	}

	return &Store{
		Name:      name,
		OwnerName: owner,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Key returns the business key of the store
func (s *Store) Key() StoreKey {
	return StoreKey{Name: s.Name, OwnerName: s.OwnerName}
}

// Touch records that the store received new transactions
func (s *Store) Touch(now time.Time) {
	s.UpdatedAt = now
}
