package processing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	mcore "github.com/amirhossein-jamali/cnab-processor/mocks/port/core"
	mpers "github.com/amirhossein-jamali/cnab-processor/mocks/port/persistence"
	muse "github.com/amirhossein-jamali/cnab-processor/mocks/port/usecase"
)

func TestDispatcher_RecoverPending(t *testing.T) {
	pendingStatuses := []entity.FileStatus{entity.FileStatusUploaded, entity.FileStatusProcessing}

	t.Run("should enqueue every pending file", func(t *testing.T) {
		files := mpers.NewMockFileRepository(t)
		d := NewDispatcher(muse.NewMockFileProcessor(t), testDispatcherConfig(), mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)

		pending := []*entity.File{
			{ID: uuid.New(), StorageLocator: "a", Status: entity.FileStatusUploaded},
			{ID: uuid.New(), StorageLocator: "b", Status: entity.FileStatusProcessing},
		}
		files.On("ListByStatus", mock.Anything, pendingStatuses, 50).Return(pending, nil).Once()

		n, err := d.RecoverPending(context.Background(), files, 50)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Len(t, d.jobs, 2)
		job := <-d.jobs
		assert.Equal(t, pending[0].ID, job.FileID)
		assert.Equal(t, "a", job.Locator)
	})

	t.Run("should stop at a full queue", func(t *testing.T) {
		files := mpers.NewMockFileRepository(t)
		cfg := testDispatcherConfig()
		cfg.QueueSize = 1
		d := NewDispatcher(muse.NewMockFileProcessor(t), cfg, mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)

		files.On("ListByStatus", mock.Anything, pendingStatuses, DefaultRecoveryLimit).Return([]*entity.File{
			{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()},
		}, nil).Once()

		n, err := d.RecoverPending(context.Background(), files, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("should return repository errors", func(t *testing.T) {
		files := mpers.NewMockFileRepository(t)
		d := NewDispatcher(muse.NewMockFileProcessor(t), testDispatcherConfig(), mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)
		files.On("ListByStatus", mock.Anything, pendingStatuses, 10).Return(nil, errs.ErrDatabaseConnection).Once()

		n, err := d.RecoverPending(context.Background(), files, 10)

		assert.Zero(t, n)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}
