package file

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/storage"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/usecase"
)

// SyncRunner runs the processing pipeline on the caller's goroutine
type SyncRunner interface {
	ProcessNow(ctx context.Context, fileID uuid.UUID, locator string) (*usecase.ProcessingOutcome, error)
}

// FileUseCase handles uploads and file lookups
type FileUseCase struct {
	files        persistence.FileRepository
	writer       storage.Writer
	queue        usecase.ProcessingQueue
	runner       SyncRunner
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewFileUseCase creates a new FileUseCase
func NewFileUseCase(
	files persistence.FileRepository,
	writer storage.Writer,
	queue usecase.ProcessingQueue,
	runner SyncRunner,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *FileUseCase {
	return &FileUseCase{
		files:        files,
		writer:       writer,
		queue:        queue,
		runner:       runner,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.FileUseCase = (*FileUseCase)(nil)

// Upload stores the content, records the file as Uploaded and queues it.
// A full queue does not fail the upload: the file stays Uploaded and is picked up by recovery
// or an explicit process request.
func (u *FileUseCase) Upload(ctx context.Context, req usecase.UploadRequest) (*entity.File, error) {
	name := filepath.Base(strings.TrimSpace(req.FileName))
	if name == "" || name == "." || name == string(filepath.Separator) || req.Content == nil {
		return nil, errs.ErrInvalidFile
	}
	if strings.TrimSpace(req.OwnerUserID) == "" {
		return nil, fmt.Errorf("%w: owner user id is required", errs.ErrInvalidRequest)
	}

	obj, err := u.writer.Save(ctx, name, req.Content)
	if err != nil {
		u.logger.Error("Failed to store uploaded file", map[string]any{
			"file_name": name,
			"error":     err.Error(),
		})
		return nil, err
	}
	if obj.SizeBytes == 0 {
		u.discard(ctx, obj.Locator)
		return nil, fmt.Errorf("%w: file is empty", errs.ErrInvalidFile)
	}

	file, err := entity.NewFile(name, obj.Locator, obj.Checksum, req.OwnerUserID, obj.SizeBytes, u.timeProvider)
	if err != nil {
		u.discard(ctx, obj.Locator)
		return nil, err
	}

	if err := u.files.Create(ctx, file); err != nil {
		u.logger.Error("Failed to record uploaded file", map[string]any{
			"file_id": file.ID.String(),
			"locator": obj.Locator,
			"error":   err.Error(),
		})
		u.discard(ctx, obj.Locator)
		return nil, err
	}

	u.logger.Info("File uploaded", map[string]any{
		"file_id":       file.ID.String(),
		"file_name":     name,
		"size_bytes":    obj.SizeBytes,
		"owner_user_id": req.OwnerUserID,
	})

	err = u.queue.Enqueue(ctx, usecase.ProcessingJob{FileID: file.ID, Locator: file.StorageLocator})
	if errors.Is(err, errs.ErrQueueFull) {
		u.logger.Warn("File left uploaded, processing queue is full", map[string]any{"file_id": file.ID.String()})
		return file, nil
	}
	if err != nil {
		return nil, err
	}

	return file, nil
}

// discard removes content that never got a file record
func (u *FileUseCase) discard(ctx context.Context, locator string) {
	if err := u.writer.Delete(context.WithoutCancel(ctx), locator); err != nil {
		u.logger.Warn("Failed to remove orphaned upload", map[string]any{
			"locator": locator,
			"error":   err.Error(),
		})
	}
}

// GetFile returns the current state of a file
func (u *FileUseCase) GetFile(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	return u.files.GetByID(ctx, id)
}

// ProcessNow runs the pipeline synchronously for an existing file
func (u *FileUseCase) ProcessNow(ctx context.Context, id uuid.UUID) (*usecase.ProcessingOutcome, error) {
	file, err := u.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.logger.Info("Synchronous processing requested", map[string]any{
		"file_id": id.String(),
		"status":  string(file.Status),
	})
	return u.runner.ProcessNow(ctx, file.ID, file.StorageLocator)
}
