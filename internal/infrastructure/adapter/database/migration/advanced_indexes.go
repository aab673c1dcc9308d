package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific advanced indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type indexStatement struct {
	name string
	sql  string
}

var advancedIndexes = []indexStatement{
	{
		// recovery scans only look at files that are not finished yet
		name: "idx_files_pending",
		sql: `CREATE INDEX IF NOT EXISTS idx_files_pending
			ON files (uploaded_at)
			WHERE status IN ('Uploaded', 'Processing')`,
	},
	{
		name: "idx_transactions_date_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_date_brin
			ON transactions USING BRIN (date)
			WITH (pages_per_range = 32)`,
	},
	{
		// covering index for the balance aggregation
		name: "idx_transactions_store_type_amount",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_store_type_amount
			ON transactions (store_id) INCLUDE (type_code, amount)`,
	},
}

// CreateAdvancedIndexes creates advanced PostgreSQL indexes
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	for _, idx := range advancedIndexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create advanced index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", map[string]any{
		"count": len(advancedIndexes),
	})
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL storage settings. Failures are logged only.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// files rows are updated twice in their lifetime
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE files SET (fillfactor = 80)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for files table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions ALTER COLUMN store_id SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for store_id", map[string]any{
			"error": err.Error(),
		})
	}
}
