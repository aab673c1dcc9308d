package file

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/storage"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/usecase"
	mcore "github.com/amirhossein-jamali/cnab-processor/mocks/port/core"
	mpers "github.com/amirhossein-jamali/cnab-processor/mocks/port/persistence"
	mstorage "github.com/amirhossein-jamali/cnab-processor/mocks/port/storage"
	muse "github.com/amirhossein-jamali/cnab-processor/mocks/port/usecase"
)

type stubRunner struct {
	fileID  uuid.UUID
	locator string
	outcome *usecase.ProcessingOutcome
	err     error
}

func (s *stubRunner) ProcessNow(_ context.Context, fileID uuid.UUID, locator string) (*usecase.ProcessingOutcome, error) {
	s.fileID = fileID
	s.locator = locator
	return s.outcome, s.err
}

type fileFixture struct {
	files   *mpers.MockFileRepository
	writer  *mstorage.MockWriter
	queue   *muse.MockProcessingQueue
	runner  *stubRunner
	logger  *mcore.MockLogger
	useCase *FileUseCase
}

func newFileFixture(t *testing.T) *fileFixture {
	f := &fileFixture{
		files:  mpers.NewMockFileRepository(t),
		writer: mstorage.NewMockWriter(t),
		queue:  muse.NewMockProcessingQueue(t),
		runner: &stubRunner{},
		logger: mcore.NewMockLogger(t),
	}

	clock := mcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)).Maybe()

	f.logger.On("Info", mock.Anything, mock.Anything).Maybe()
	f.logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	f.logger.On("Error", mock.Anything, mock.Anything).Maybe()

	f.useCase = NewFileUseCase(f.files, f.writer, f.queue, f.runner, clock, f.logger)
	return f
}

func TestFileUseCase_Upload(t *testing.T) {
	ctx := context.Background()
	saved := &storage.SavedObject{Locator: "2025/06/01/abc-CNAB.txt", SizeBytes: 160, Checksum: "deadbeef"}

	t.Run("should store, record and enqueue the file", func(t *testing.T) {
		// Arrange
		f := newFileFixture(t)
		content := strings.NewReader("content")
		f.writer.On("Save", ctx, "CNAB.txt", content).Return(saved, nil).Once()

		var created *entity.File
		f.files.On("Create", ctx, mock.AnythingOfType("*entity.File")).Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.File)
		}).Return(nil).Once()
		f.queue.On("Enqueue", ctx, mock.MatchedBy(func(job usecase.ProcessingJob) bool {
			return job.Locator == saved.Locator && job.Attempt == 0
		})).Return(nil).Once()

		// Act
		file, err := f.useCase.Upload(ctx, usecase.UploadRequest{FileName: " uploads/CNAB.txt ", OwnerUserID: "user-1", Content: content})

		// Assert
		require.NoError(t, err)
		assert.Same(t, created, file)
		assert.Equal(t, "CNAB.txt", file.OriginalName)
		assert.Equal(t, entity.FileStatusUploaded, file.Status)
		assert.Equal(t, saved.Checksum, file.Checksum)
		assert.Equal(t, int64(160), file.SizeBytes)
		assert.Equal(t, "user-1", file.OwnerUserID)
	})

	t.Run("should keep the upload when the queue is full", func(t *testing.T) {
		f := newFileFixture(t)
		f.writer.On("Save", ctx, "CNAB.txt", mock.Anything).Return(saved, nil).Once()
		f.files.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.queue.On("Enqueue", ctx, mock.Anything).Return(errs.ErrQueueFull).Once()

		file, err := f.useCase.Upload(ctx, usecase.UploadRequest{FileName: "CNAB.txt", OwnerUserID: "user-1", Content: strings.NewReader("x")})

		require.NoError(t, err)
		assert.Equal(t, entity.FileStatusUploaded, file.Status)
	})

	t.Run("should reject a request without content", func(t *testing.T) {
		f := newFileFixture(t)

		_, err := f.useCase.Upload(ctx, usecase.UploadRequest{FileName: "CNAB.txt", OwnerUserID: "user-1"})

		assert.ErrorIs(t, err, errs.ErrInvalidFile)
		f.writer.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject a request without owner", func(t *testing.T) {
		f := newFileFixture(t)

		_, err := f.useCase.Upload(ctx, usecase.UploadRequest{FileName: "CNAB.txt", Content: strings.NewReader("x")})

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("should reject empty content", func(t *testing.T) {
		f := newFileFixture(t)
		f.writer.On("Save", ctx, "CNAB.txt", mock.Anything).Return(&storage.SavedObject{Locator: "x"}, nil).Once()
		f.writer.On("Delete", mock.Anything, "x").Return(nil).Once()

		_, err := f.useCase.Upload(ctx, usecase.UploadRequest{FileName: "CNAB.txt", OwnerUserID: "user-1", Content: strings.NewReader("")})

		assert.ErrorIs(t, err, errs.ErrInvalidFile)
		f.files.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should return storage errors", func(t *testing.T) {
		f := newFileFixture(t)
		f.writer.On("Save", ctx, "CNAB.txt", mock.Anything).Return(nil, errs.ErrFileTooLarge).Once()

		_, err := f.useCase.Upload(ctx, usecase.UploadRequest{FileName: "CNAB.txt", OwnerUserID: "user-1", Content: strings.NewReader("x")})

		assert.ErrorIs(t, err, errs.ErrFileTooLarge)
	})

	t.Run("should return database errors without enqueueing", func(t *testing.T) {
		f := newFileFixture(t)
		f.writer.On("Save", ctx, "CNAB.txt", mock.Anything).Return(saved, nil).Once()
		f.files.On("Create", ctx, mock.Anything).Return(errs.ErrDatabaseConnection).Once()
		f.writer.On("Delete", mock.Anything, saved.Locator).Return(nil).Once()

		_, err := f.useCase.Upload(ctx, usecase.UploadRequest{FileName: "CNAB.txt", OwnerUserID: "user-1", Content: strings.NewReader("x")})

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		f.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})

	t.Run("should keep the database error when the content cannot be removed", func(t *testing.T) {
		f := newFileFixture(t)
		cctx, cancel := context.WithCancel(ctx)
		f.writer.On("Save", cctx, "CNAB.txt", mock.Anything).Return(saved, nil).Once()
		f.files.On("Create", cctx, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(errs.ErrDatabaseConnection).Once()
		f.writer.On("Delete", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), saved.Locator).
			Return(errs.ErrStorageUnavailable).Once()

		_, err := f.useCase.Upload(cctx, usecase.UploadRequest{FileName: "CNAB.txt", OwnerUserID: "user-1", Content: strings.NewReader("x")})

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		f.logger.AssertCalled(t, "Warn", "Failed to remove orphaned upload", mock.Anything)
	})
}

func TestFileUseCase_ProcessNow(t *testing.T) {
	ctx := context.Background()

	t.Run("should run the stored file", func(t *testing.T) {
		f := newFileFixture(t)
		file := &entity.File{ID: uuid.New(), StorageLocator: "loc", Status: entity.FileStatusUploaded}
		f.files.On("GetByID", ctx, file.ID).Return(file, nil).Once()
		f.runner.outcome = &usecase.ProcessingOutcome{FileID: file.ID, Status: entity.FileStatusProcessed, TransactionCount: 3}

		outcome, err := f.useCase.ProcessNow(ctx, file.ID)

		require.NoError(t, err)
		assert.Equal(t, 3, outcome.TransactionCount)
		assert.Equal(t, file.ID, f.runner.fileID)
		assert.Equal(t, "loc", f.runner.locator)
	})

	t.Run("should return not found for unknown files", func(t *testing.T) {
		f := newFileFixture(t)
		id := uuid.New()
		f.files.On("GetByID", ctx, id).Return(nil, errs.ErrFileNotFound).Once()

		_, err := f.useCase.ProcessNow(ctx, id)

		assert.ErrorIs(t, err, errs.ErrFileNotFound)
		assert.Equal(t, uuid.Nil, f.runner.fileID)
	})
}

func TestFileUseCase_GetFile(t *testing.T) {
	f := newFileFixture(t)
	file := &entity.File{ID: uuid.New()}
	f.files.On("GetByID", mock.Anything, file.ID).Return(file, nil).Once()

	got, err := f.useCase.GetFile(context.Background(), file.ID)

	require.NoError(t, err)
	assert.Same(t, file, got)
}
