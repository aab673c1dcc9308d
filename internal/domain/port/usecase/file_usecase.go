package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

// ProcessingOutcome is the success variant of a processing run
type ProcessingOutcome struct {
	FileID           uuid.UUID
	Status           entity.FileStatus
	TransactionCount int
	StoreCount       int
	// AlreadyProcessed is set when an idempotency guard short-circuited the run
	AlreadyProcessed bool
}

// FileProcessor runs the processing pipeline for one file.
// Failures are returned as *errs.ProcessingFailure.
type FileProcessor interface {
	Process(ctx context.Context, fileID uuid.UUID, locator string) (*ProcessingOutcome, error)
}

// UploadRequest carries an uploaded file
type UploadRequest struct {
	FileName    string
	OwnerUserID string
	Content     io.Reader
}

// FileUseCase defines file-related operations exposed to the API
type FileUseCase interface {
	// Upload stores the content, records the file as Uploaded and queues it for processing
	Upload(ctx context.Context, req UploadRequest) (*entity.File, error)

	// GetFile returns the current state of a file
	GetFile(ctx context.Context, id uuid.UUID) (*entity.File, error)

	// ProcessNow runs the pipeline synchronously for a file
	ProcessNow(ctx context.Context, id uuid.UUID) (*ProcessingOutcome, error)
}

// StoreUseCase defines read operations over stores and their derived balances
type StoreUseCase interface {
	// ListBalances returns every store with its balance
	ListBalances(ctx context.Context) ([]entity.StoreBalance, error)

	// GetStatement returns a store, its transactions and its balance
	GetStatement(ctx context.Context, storeID uint64) (*entity.StoreStatement, error)
}

// ProcessingJob is a request to process one stored file
type ProcessingJob struct {
	FileID  uuid.UUID
	Locator string
	Attempt int
}

// ProcessingQueue hands files to background processing workers
type ProcessingQueue interface {
	// Enqueue schedules job; it fails with ErrQueueFull when no capacity is left
	Enqueue(ctx context.Context, job ProcessingJob) error
}
