package processing

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/usecase"
)

// DefaultRecoveryLimit bounds how many pending files are requeued at startup
const DefaultRecoveryLimit = 1000

// RecoverPending requeues files left Uploaded or Processing by a previous run.
// It stops at the first full queue and returns how many files were enqueued.
func (d *Dispatcher) RecoverPending(ctx context.Context, files persistence.FileRepository, limit int) (int, error) {
	if limit <= 0 {
		limit = DefaultRecoveryLimit
	}

	pending, err := files.ListByStatus(ctx, []entity.FileStatus{entity.FileStatusUploaded, entity.FileStatusProcessing}, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending files: %w", err)
	}

	enqueued := 0
	for _, file := range pending {
		err := d.Enqueue(ctx, usecase.ProcessingJob{FileID: file.ID, Locator: file.StorageLocator})
		if errors.Is(err, errs.ErrQueueFull) {
			d.logger.Warn("Processing queue full during recovery", map[string]any{
				"enqueued": enqueued,
				"pending":  len(pending),
			})
			break
		}
		if err != nil {
			return enqueued, err
		}
		enqueued++
	}

	if len(pending) > 0 {
		d.logger.Info("Recovered pending files", map[string]any{
			"enqueued": enqueued,
			"pending":  len(pending),
		})
	}
	return enqueued, nil
}
