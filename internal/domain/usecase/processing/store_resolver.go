package processing

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
)

// DefaultStoreResolveAttempts bounds the lookup-then-insert loop for one store
const DefaultStoreResolveAttempts = 3

// ResolvedStore is a store referenced by a file
type ResolvedStore struct {
	Store   *entity.Store
	Created bool
}

// StoreResolver finds or creates stores by business key. The unique (name, owner) constraint is
// authoritative: losing an insert race to another writer sends the resolver back to the lookup.
type StoreResolver struct {
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	maxAttempts  int
}

// NewStoreResolver creates a new StoreResolver
func NewStoreResolver(timeProvider coreport.TimeProvider, logger coreport.Logger, maxAttempts int) *StoreResolver {
	if maxAttempts <= 0 {
		maxAttempts = DefaultStoreResolveAttempts
	}
	return &StoreResolver{
		timeProvider: timeProvider,
		logger:       logger,
		maxAttempts:  maxAttempts,
	}
}

// Resolve returns the store for key, creating it when absent
func (r *StoreResolver) Resolve(ctx context.Context, repo persistence.StoreRepository, key entity.StoreKey) (*ResolvedStore, error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		store, err := repo.GetByNameAndOwner(ctx, key.Name, key.OwnerName)
		if err == nil {
			return &ResolvedStore{Store: store}, nil
		}
		if !errors.Is(err, errs.ErrStoreNotFound) {
			return nil, err
		}

		store, err = entity.NewStore(key, r.timeProvider.Now())
		if err != nil {
			return nil, err
		}

		err = repo.Add(ctx, store)
		if err == nil {
			r.logger.Debug("Store created", map[string]any{
				"store_id":   store.ID,
				"store_name": store.Name,
				"owner_name": store.OwnerName,
			})
			return &ResolvedStore{Store: store, Created: true}, nil
		}
		if !errs.IsDuplicateStoreError(err) {
			return nil, err
		}

		r.logger.Warn("Store was created concurrently, retrying lookup", map[string]any{
			"store":   key.String(),
			"attempt": attempt,
		})
	}

	return nil, fmt.Errorf("%w: store %s could not be resolved after %d attempts",
		errs.ErrConstraintViolation, key, r.maxAttempts)
}

// ResolveAll resolves keys in order, once per distinct key
func (r *StoreResolver) ResolveAll(ctx context.Context, repo persistence.StoreRepository, keys []entity.StoreKey) (map[entity.StoreKey]*ResolvedStore, error) {
	resolved := make(map[entity.StoreKey]*ResolvedStore, len(keys))
	for _, key := range keys {
		if _, ok := resolved[key]; ok {
			continue
		}
		rs, err := r.Resolve(ctx, repo, key)
		if err != nil {
			return nil, err
		}
		resolved[key] = rs
	}
	return resolved, nil
}
