package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

// FileRepository defines methods to interact with uploaded file records
type FileRepository interface {
	// Create saves a newly uploaded file
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, file *entity.File) error

	// GetByID retrieves a file by its identity
	//
	// Possible errors:
	// - ErrFileNotFound: If no file has the given ID
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uuid.UUID) (*entity.File, error)

	// Update persists the full current state of the file, including status and error message
	//
	// Possible errors:
	// - ErrFileNotFound: If no file has the given ID
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, file *entity.File) error

	// ListByStatus returns files in any of the given statuses, oldest upload first
	ListByStatus(ctx context.Context, statuses []entity.FileStatus, limit int) ([]*entity.File, error)
}
