package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/repository"
)

var uploadedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return database.NewTestDBManager(t, logger.NewNoopLogger()).DB()
}

func seedFile(t *testing.T, db *gorm.DB, status entity.FileStatus, uploaded time.Time) *entity.File {
	t.Helper()
	file := &entity.File{
		ID:             uuid.New(),
		OriginalName:   "CNAB.txt",
		SizeBytes:      160,
		StorageLocator: "2025/06/01/" + uuid.NewString(),
		Checksum:       "abc",
		OwnerUserID:    "user-1",
		UploadedAt:     uploaded,
		Status:         status,
	}
	require.NoError(t, repository.NewFileRepository(db, logger.NewNoopLogger()).Create(context.Background(), file))
	return file
}

func seedStore(t *testing.T, db *gorm.DB, name, owner string) *entity.Store {
	t.Helper()
	store, err := entity.NewStore(entity.StoreKey{Name: name, OwnerName: owner}, uploadedAt)
	require.NoError(t, err)
	require.NoError(t, repository.NewStoreRepository(db, logger.NewNoopLogger()).Add(context.Background(), store))
	return store
}

func newTx(t *testing.T, fileID uuid.UUID, storeID uint64, typeCode int, amount int64, date string, tod string) *entity.Transaction {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	clock, err := entity.ParseTimeOfDay(tod)
	require.NoError(t, err)
	tx, err := entity.NewTransaction(fileID, storeID, typeCode, amount, d, clock, "4753****3153", "09620676017", uploadedAt)
	require.NoError(t, err)
	return tx
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should create and load a file", func(t *testing.T) {
		db := newTestDB(t)
		file := seedFile(t, db, entity.FileStatusUploaded, uploadedAt)

		got, err := repository.NewFileRepository(db, logger.NewNoopLogger()).GetByID(ctx, file.ID)

		require.NoError(t, err)
		assert.Equal(t, file.ID, got.ID)
		assert.Equal(t, file.StorageLocator, got.StorageLocator)
		assert.Equal(t, entity.FileStatusUploaded, got.Status)
		assert.True(t, file.UploadedAt.Equal(got.UploadedAt))
		assert.Nil(t, got.CompletedAt)
	})

	t.Run("should return not found for unknown files", func(t *testing.T) {
		db := newTestDB(t)

		_, err := repository.NewFileRepository(db, logger.NewNoopLogger()).GetByID(ctx, uuid.New())

		assert.ErrorIs(t, err, errs.ErrFileNotFound)
	})

	t.Run("should persist status transitions", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewFileRepository(db, logger.NewNoopLogger())
		file := seedFile(t, db, entity.FileStatusUploaded, uploadedAt)

		require.NoError(t, file.StartProcessing())
		require.NoError(t, file.MarkRejected("structural validation failed: line 1: bad", uploadedAt.Add(time.Minute)))
		require.NoError(t, repo.Update(ctx, file))

		got, err := repo.GetByID(ctx, file.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.FileStatusRejected, got.Status)
		assert.Equal(t, "structural validation failed: line 1: bad", got.ErrorMessage)
		require.NotNil(t, got.CompletedAt)
	})

	t.Run("should reject an unknown status through the lookup", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewFileRepository(db, logger.NewNoopLogger())
		file := seedFile(t, db, entity.FileStatusUploaded, uploadedAt)

		file.Status = "Archived"
		err := repo.Update(ctx, file)

		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})

	t.Run("should return not found when updating a missing file", func(t *testing.T) {
		db := newTestDB(t)

		err := repository.NewFileRepository(db, logger.NewNoopLogger()).Update(ctx, &entity.File{ID: uuid.New(), Status: entity.FileStatusProcessing})

		assert.ErrorIs(t, err, errs.ErrFileNotFound)
	})

	t.Run("should list pending files oldest first", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewFileRepository(db, logger.NewNoopLogger())
		newer := seedFile(t, db, entity.FileStatusUploaded, uploadedAt.Add(time.Hour))
		older := seedFile(t, db, entity.FileStatusProcessing, uploadedAt)
		seedFile(t, db, entity.FileStatusProcessed, uploadedAt.Add(-time.Hour))

		files, err := repo.ListByStatus(ctx, []entity.FileStatus{entity.FileStatusUploaded, entity.FileStatusProcessing}, 10)
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, older.ID, files[0].ID)
		assert.Equal(t, newer.ID, files[1].ID)

		limited, err := repo.ListByStatus(ctx, []entity.FileStatus{entity.FileStatusUploaded, entity.FileStatusProcessing}, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		none, err := repo.ListByStatus(ctx, nil, 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestStoreRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should add and find a store by its business key", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewStoreRepository(db, logger.NewNoopLogger())
		store := seedStore(t, db, "BAR DO JOAO", "JOAO MACEDO")

		assert.NotZero(t, store.ID)

		got, err := repo.GetByNameAndOwner(ctx, "BAR DO JOAO", "JOAO MACEDO")
		require.NoError(t, err)
		assert.Equal(t, store.ID, got.ID)

		byID, err := repo.GetByID(ctx, store.ID)
		require.NoError(t, err)
		assert.Equal(t, "JOAO MACEDO", byID.OwnerName)
	})

	t.Run("should treat the same name with another owner as another store", func(t *testing.T) {
		db := newTestDB(t)
		a := seedStore(t, db, "LOJA", "ANA")
		b := seedStore(t, db, "LOJA", "JOSE")

		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("should report a duplicate business key", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewStoreRepository(db, logger.NewNoopLogger())
		seedStore(t, db, "BAR DO JOAO", "JOAO MACEDO")

		dup, err := entity.NewStore(entity.StoreKey{Name: "BAR DO JOAO", OwnerName: "JOAO MACEDO"}, uploadedAt)
		require.NoError(t, err)

		assert.ErrorIs(t, repo.Add(ctx, dup), errs.ErrDuplicateStore)
		assert.Zero(t, dup.ID)
	})

	t.Run("should return not found for unknown stores", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewStoreRepository(db, logger.NewNoopLogger())

		_, err := repo.GetByNameAndOwner(ctx, "NOPE", "NOBODY")
		assert.ErrorIs(t, err, errs.ErrStoreNotFound)

		_, err = repo.GetByID(ctx, 42)
		assert.ErrorIs(t, err, errs.ErrStoreNotFound)

		assert.ErrorIs(t, repo.Update(ctx, &entity.Store{ID: 42}), errs.ErrStoreNotFound)
	})

	t.Run("should update the store timestamp", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewStoreRepository(db, logger.NewNoopLogger())
		store := seedStore(t, db, "MERCADO", "ANA")

		store.Touch(uploadedAt.Add(time.Hour))
		require.NoError(t, repo.Update(ctx, store))

		got, err := repo.GetByID(ctx, store.ID)
		require.NoError(t, err)
		assert.True(t, got.UpdatedAt.Equal(uploadedAt.Add(time.Hour)))
	})

	t.Run("should aggregate balances with the lookup signs", func(t *testing.T) {
		db := newTestDB(t)
		file := seedFile(t, db, entity.FileStatusProcessing, uploadedAt)
		bar := seedStore(t, db, "BAR DO JOAO", "JOAO MACEDO")
		empty := seedStore(t, db, "LOJA VAZIA", "ANA")

		txs := []*entity.Transaction{
			newTx(t, file.ID, bar.ID, 1, 15200, "2019-03-01", "15:34:53"), // debit +
			newTx(t, file.ID, bar.ID, 3, 14200, "2019-03-01", "17:27:12"), // financing -
			newTx(t, file.ID, bar.ID, 2, 11200, "2019-03-01", "23:42:34"), // boleto -
		}
		require.NoError(t, repository.NewTransactionRepository(db, logger.NewNoopLogger()).AddRange(ctx, txs))

		balances, err := repository.NewStoreRepository(db, logger.NewNoopLogger()).ListBalances(ctx)

		require.NoError(t, err)
		require.Len(t, balances, 2)
		assert.Equal(t, bar.ID, balances[0].Store.ID)
		assert.Equal(t, int64(-10200), balances[0].Balance)
		assert.Equal(t, int64(3), balances[0].TransactionCount)
		assert.Equal(t, empty.ID, balances[1].Store.ID)
		assert.Zero(t, balances[1].Balance)
		assert.Zero(t, balances[1].TransactionCount)
	})
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should insert in order with sequential ids", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewTransactionRepository(db, logger.NewNoopLogger())
		file := seedFile(t, db, entity.FileStatusProcessing, uploadedAt)
		store := seedStore(t, db, "BAR DO JOAO", "JOAO MACEDO")

		txs := []*entity.Transaction{
			newTx(t, file.ID, store.ID, 4, 100, "2019-03-02", "10:00:00"),
			newTx(t, file.ID, store.ID, 9, 200, "2019-03-01", "09:00:00"),
		}
		require.NoError(t, repo.AddRange(ctx, txs))

		assert.NotZero(t, txs[0].ID)
		assert.Greater(t, txs[1].ID, txs[0].ID)

		byFile, err := repo.GetByFileID(ctx, file.ID)
		require.NoError(t, err)
		require.Len(t, byFile, 2)
		assert.Equal(t, txs[0].ID, byFile[0].ID)
		assert.Equal(t, entity.TimeOfDay{Hour: 10}, byFile[0].Time)
		assert.Equal(t, "4753****3153", byFile[0].CardRef)

		count, err := repo.CountByFileID(ctx, file.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("should list store transactions chronologically", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewTransactionRepository(db, logger.NewNoopLogger())
		file := seedFile(t, db, entity.FileStatusProcessing, uploadedAt)
		store := seedStore(t, db, "BAR DO JOAO", "JOAO MACEDO")
		other := seedStore(t, db, "MERCADO", "ANA")

		require.NoError(t, repo.AddRange(ctx, []*entity.Transaction{
			newTx(t, file.ID, store.ID, 1, 100, "2019-03-02", "08:00:00"),
			newTx(t, file.ID, other.ID, 1, 100, "2019-03-01", "08:00:00"),
			newTx(t, file.ID, store.ID, 1, 100, "2019-03-01", "12:00:00"),
			newTx(t, file.ID, store.ID, 1, 100, "2019-03-01", "07:30:00"),
		}))

		got, err := repo.ListByStoreID(ctx, store.ID)

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "2019-03-01 07:30:00", got[0].OccurredAt().Format(time.DateTime))
		assert.Equal(t, "2019-03-01 12:00:00", got[1].OccurredAt().Format(time.DateTime))
		assert.Equal(t, "2019-03-02 08:00:00", got[2].OccurredAt().Format(time.DateTime))
	})

	t.Run("should report missing parents as constraint violations", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewTransactionRepository(db, logger.NewNoopLogger())
		file := seedFile(t, db, entity.FileStatusProcessing, uploadedAt)

		err := repo.AddRange(ctx, []*entity.Transaction{newTx(t, file.ID, 999, 1, 100, "2019-03-01", "08:00:00")})

		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})

	t.Run("should accept an empty range", func(t *testing.T) {
		db := newTestDB(t)
		assert.NoError(t, repository.NewTransactionRepository(db, logger.NewNoopLogger()).AddRange(ctx, nil))
	})
}

func TestTransactionTypeRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewTransactionTypeRepository(db, logger.NewNoopLogger())

	types, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, types, 9)

	signs := make(map[int]int, len(types))
	for _, tt := range types {
		signs[tt.Code] = tt.Sign
	}
	assert.Equal(t, map[int]int{1: 1, 2: -1, 3: -1, 4: 1, 5: 1, 6: 1, 7: 1, 8: 1, 9: -1}, signs)

	rent, err := repo.GetByCode(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, entity.NatureExpense, rent.Nature)

	_, err = repo.GetByCode(ctx, 10)
	assert.ErrorIs(t, err, errs.ErrTransactionTypeNotFound)
}
