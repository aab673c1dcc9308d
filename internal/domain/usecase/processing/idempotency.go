package processing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
)

// IdempotencyGuard detects files whose transactions were already committed
type IdempotencyGuard struct {
	logger coreport.Logger
}

// NewIdempotencyGuard creates a new IdempotencyGuard
func NewIdempotencyGuard(logger coreport.Logger) *IdempotencyGuard {
	return &IdempotencyGuard{logger: logger}
}

// ExistingTransactions returns how many transactions already reference fileID
// and whether the file must be treated as processed
func (g *IdempotencyGuard) ExistingTransactions(
	ctx context.Context,
	repo persistence.TransactionRepository,
	fileID uuid.UUID,
) (int, bool, error) {
	transactions, err := repo.GetByFileID(ctx, fileID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to check existing transactions: %w", err)
	}

	if len(transactions) == 0 {
		return 0, false, nil
	}

	g.logger.Warn("Transactions already exist for file, skipping persistence", map[string]any{
		"file_id":           fileID.String(),
		"transaction_count": len(transactions),
	})
	return len(transactions), true, nil
}
