package processing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/cnab"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	mcore "github.com/amirhossein-jamali/cnab-processor/mocks/port/core"
	mpers "github.com/amirhossein-jamali/cnab-processor/mocks/port/persistence"
)

func TestSummarizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		limit    int
		expected string
	}{
		{"no messages", nil, 5, "structural validation failed"},
		{"under limit", []string{"line 1: a", "line 2: b"}, 5, "structural validation failed: line 1: a; line 2: b"},
		{"at limit", []string{"a", "b"}, 2, "structural validation failed: a; b"},
		{"over limit", []string{"a", "b", "c", "d"}, 2, "structural validation failed: a; b (and 2 more)"},
		{"default limit", []string{"1", "2", "3", "4", "5", "6"}, 0, "structural validation failed: 1; 2; 3; 4; 5 (and 1 more)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SummarizeErrors(structuralPrefix, tt.messages, tt.limit))
		})
	}

	t.Run("truncates long summaries", func(t *testing.T) {
		summary := SummarizeErrors(businessRulePrefix, []string{strings.Repeat("x", 3000)}, 5)
		assert.Len(t, summary, MaxErrorMessageLength)
		assert.True(t, strings.HasSuffix(summary, "..."))
	})
}

func TestGroupByStore(t *testing.T) {
	rec := func(line int, owner, store string) cnab.Record {
		return cnab.Record{LineNumber: line, OwnerName: owner, StoreName: store}
	}

	groups := GroupByStore([]cnab.Record{
		rec(1, "ANA", "LOJA B"),
		rec(2, "JOAO", "LOJA A"),
		rec(3, "ANA", "LOJA B"),
		rec(4, "JOSE", "LOJA B"),
	})

	require.Len(t, groups, 3)
	assert.Equal(t, entity.StoreKey{Name: "LOJA B", OwnerName: "ANA"}, groups[0].Key)
	assert.Equal(t, entity.StoreKey{Name: "LOJA A", OwnerName: "JOAO"}, groups[1].Key)
	// same store name with another owner is another store
	assert.Equal(t, entity.StoreKey{Name: "LOJA B", OwnerName: "JOSE"}, groups[2].Key)
	require.Len(t, groups[0].Records, 2)
	assert.Equal(t, 1, groups[0].Records[0].LineNumber)
	assert.Equal(t, 3, groups[0].Records[1].LineNumber)

	assert.Empty(t, GroupByStore(nil))
}

func TestStoreResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	key := entity.StoreKey{Name: "BAR DO JOAO", OwnerName: "JOAO MACEDO"}

	newResolver := func(t *testing.T, attempts int) *StoreResolver {
		clock := mcore.NewMockTimeProvider(t)
		clock.EXPECT().Now().Return(fixedNow).Maybe()
		return NewStoreResolver(clock, newQuietLogger(t), attempts)
	}

	t.Run("should return an existing store", func(t *testing.T) {
		repo := mpers.NewMockStoreRepository(t)
		existing := &entity.Store{ID: 3, Name: key.Name, OwnerName: key.OwnerName}
		repo.On("GetByNameAndOwner", ctx, key.Name, key.OwnerName).Return(existing, nil).Once()

		rs, err := newResolver(t, 3).Resolve(ctx, repo, key)

		require.NoError(t, err)
		assert.Same(t, existing, rs.Store)
		assert.False(t, rs.Created)
	})

	t.Run("should create a missing store", func(t *testing.T) {
		repo := mpers.NewMockStoreRepository(t)
		repo.On("GetByNameAndOwner", ctx, key.Name, key.OwnerName).Return(nil, errs.ErrStoreNotFound).Once()
		repo.On("Add", ctx, mock.MatchedBy(func(s *entity.Store) bool {
			return s.Name == key.Name && s.OwnerName == key.OwnerName && s.CreatedAt.Equal(fixedNow)
		})).Return(nil).Once()

		rs, err := newResolver(t, 3).Resolve(ctx, repo, key)

		require.NoError(t, err)
		assert.True(t, rs.Created)
	})

	t.Run("should give up when the race keeps being lost", func(t *testing.T) {
		repo := mpers.NewMockStoreRepository(t)
		repo.On("GetByNameAndOwner", ctx, key.Name, key.OwnerName).Return(nil, errs.ErrStoreNotFound).Twice()
		repo.On("Add", ctx, mock.Anything).Return(errs.ErrDuplicateStore).Twice()

		_, err := newResolver(t, 2).Resolve(ctx, repo, key)

		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})

	t.Run("should return lookup errors", func(t *testing.T) {
		repo := mpers.NewMockStoreRepository(t)
		repo.On("GetByNameAndOwner", ctx, key.Name, key.OwnerName).Return(nil, errs.ErrDatabaseConnection).Once()

		_, err := newResolver(t, 3).Resolve(ctx, repo, key)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})

	t.Run("should resolve each key once", func(t *testing.T) {
		repo := mpers.NewMockStoreRepository(t)
		other := entity.StoreKey{Name: "MERCADO", OwnerName: "ANA"}
		repo.On("GetByNameAndOwner", ctx, key.Name, key.OwnerName).Return(&entity.Store{ID: 1}, nil).Once()
		repo.On("GetByNameAndOwner", ctx, other.Name, other.OwnerName).Return(&entity.Store{ID: 2}, nil).Once()

		resolved, err := newResolver(t, 3).ResolveAll(ctx, repo, []entity.StoreKey{key, other, key})

		require.NoError(t, err)
		assert.Len(t, resolved, 2)
		assert.Equal(t, uint64(2), resolved[other].Store.ID)
	})
}

func TestIdempotencyGuard_ExistingTransactions(t *testing.T) {
	ctx := context.Background()
	fileID := uuid.New()

	t.Run("should report existing transactions", func(t *testing.T) {
		repo := mpers.NewMockTransactionRepository(t)
		repo.On("GetByFileID", ctx, fileID).Return([]*entity.Transaction{{ID: 1}}, nil).Once()

		count, found, err := NewIdempotencyGuard(newQuietLogger(t)).ExistingTransactions(ctx, repo, fileID)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 1, count)
	})

	t.Run("should report a fresh file", func(t *testing.T) {
		repo := mpers.NewMockTransactionRepository(t)
		repo.On("GetByFileID", ctx, fileID).Return(nil, nil).Once()

		count, found, err := NewIdempotencyGuard(newQuietLogger(t)).ExistingTransactions(ctx, repo, fileID)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, count)
	})

	t.Run("should wrap repository errors", func(t *testing.T) {
		repo := mpers.NewMockTransactionRepository(t)
		repo.On("GetByFileID", ctx, fileID).Return(nil, errors.New("boom")).Once()

		_, _, err := NewIdempotencyGuard(newQuietLogger(t)).ExistingTransactions(ctx, repo, fileID)

		assert.EqualError(t, err, "failed to check existing transactions: boom")
	})
}
