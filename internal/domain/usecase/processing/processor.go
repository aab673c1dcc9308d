package processing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/cnab"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/storage"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/usecase"
)

// Processor turns a stored CNAB file into committed stores and transactions.
// It is safe to call repeatedly for the same file: terminal files are answered from their
// stored state and files whose transactions already exist are not written again.
type Processor struct {
	uow          persistence.UnitOfWork
	storage      storage.Reader
	parser       *cnab.Parser
	validator    *cnab.Validator
	idempotency  *IdempotencyGuard
	resolver     *StoreResolver
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.ProcessingMetrics
	summaryLimit int
}

// Option configures a Processor
type Option func(*Processor)

// WithErrorSummaryLimit sets how many messages a rejection summary keeps
func WithErrorSummaryLimit(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.summaryLimit = n
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m coreport.ProcessingMetrics) Option {
	return func(p *Processor) {
		if m != nil {
			p.metrics = m
		}
	}
}

// WithStoreResolver replaces the default store resolver
func WithStoreResolver(r *StoreResolver) Option {
	return func(p *Processor) {
		if r != nil {
			p.resolver = r
		}
	}
}

// NewProcessor creates a new Processor
func NewProcessor(
	uow persistence.UnitOfWork,
	reader storage.Reader,
	parser *cnab.Parser,
	validator *cnab.Validator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	opts ...Option,
) *Processor {
	p := &Processor{
		uow:          uow,
		storage:      reader,
		parser:       parser,
		validator:    validator,
		idempotency:  NewIdempotencyGuard(logger),
		resolver:     NewStoreResolver(timeProvider, logger, DefaultStoreResolveAttempts),
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      nopMetrics{},
		summaryLimit: DefaultErrorSummaryLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ usecase.FileProcessor = (*Processor)(nil)

// Process runs the pipeline for fileID. An empty locator means the one stored on the file.
// Failures are *errs.ProcessingFailure values; Retryable() tells the caller whether to redeliver.
func (p *Processor) Process(ctx context.Context, fileID uuid.UUID, locator string) (*usecase.ProcessingOutcome, error) {
	start := p.timeProvider.Now()
	log := p.logger.With(map[string]any{"file_id": fileID.String()})

	file, err := p.uow.GetFileRepository(ctx).GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, errs.ErrFileNotFound) {
			log.Warn("File not found", nil)
			p.observe(start, "", errs.CauseNotFound)
			return nil, errs.NewNotFoundFailure(fileID.String())
		}
		log.Error("Failed to load file", map[string]any{"error": err.Error()})
		p.observe(start, "", errs.CauseInfrastructure)
		return nil, errs.NewInfrastructureFailure(fileID.String(), err)
	}

	if file.Status.IsTerminal() {
		return p.mirrorTerminal(ctx, file, start, log)
	}

	if locator == "" {
		locator = file.StorageLocator
	}

	outcome, err := p.run(ctx, file, locator, log)
	if err == nil {
		p.observe(start, outcome.Status, "")
		return outcome, nil
	}

	if failure, ok := errs.AsProcessingFailure(err); ok {
		// rejections are already recorded on the file
		p.observe(start, entity.FileStatusRejected, failure.Cause)
		return nil, err
	}

	log.Error("File processing failed", map[string]any{"error": err.Error()})
	p.recordFailure(ctx, fileID, err, log)
	p.observe(start, entity.FileStatusRejected, errs.CauseInfrastructure)
	return nil, errs.NewInfrastructureFailure(fileID.String(), err)
}

// mirrorTerminal answers a redelivery of a finished file without touching storage or writing
func (p *Processor) mirrorTerminal(ctx context.Context, file *entity.File, start time.Time, log coreport.Logger) (*usecase.ProcessingOutcome, error) {
	if file.Status == entity.FileStatusRejected {
		log.Info("File already rejected", map[string]any{"error_message": file.ErrorMessage})
		p.observe(start, file.Status, errs.CausePreviouslyRejected)
		return nil, errs.NewRejectionFailure(file.ID.String(), errs.CausePreviouslyRejected, file.ErrorMessage)
	}

	count, err := p.uow.GetTransactionRepository(ctx).CountByFileID(ctx, file.ID)
	if err != nil {
		return nil, errs.NewInfrastructureFailure(file.ID.String(), err)
	}

	log.Info("File already processed", map[string]any{"transaction_count": count})
	p.observe(start, file.Status, "")
	return &usecase.ProcessingOutcome{
		FileID:           file.ID,
		Status:           file.Status,
		TransactionCount: int(count),
		AlreadyProcessed: true,
	}, nil
}

// run executes the pipeline from the Processing transition to the final commit.
// Validation rejections come back as *errs.ProcessingFailure; anything else is unhandled.
func (p *Processor) run(ctx context.Context, file *entity.File, locator string, log coreport.Logger) (*usecase.ProcessingOutcome, error) {
	files := p.uow.GetFileRepository(ctx)

	if file.Status == entity.FileStatusUploaded {
		if err := file.StartProcessing(); err != nil {
			return nil, err
		}
		if err := files.Update(ctx, file); err != nil {
			return nil, fmt.Errorf("failed to mark file as processing: %w", err)
		}
		log.Info("File processing started", map[string]any{"locator": locator})
	} else {
		log.Warn("Resuming file left in processing", map[string]any{"locator": locator})
	}

	result, err := p.parse(ctx, locator)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, p.reject(ctx, file, errs.CauseNotFound, "stored content not found", []string{locator}, log)
		}
		return nil, err
	}
	p.metrics.ObserveLines(result.ValidLines, result.InvalidLines())

	if !result.IsValid() {
		return nil, p.reject(ctx, file, errs.CauseStructural, structuralPrefix, result.Errors, log)
	}

	if violations := p.validator.ValidateAll(result.Records); len(violations) > 0 {
		return nil, p.reject(ctx, file, errs.CauseBusinessRule, businessRulePrefix, violations, log)
	}

	count, found, err := p.idempotency.ExistingTransactions(ctx, p.uow.GetTransactionRepository(ctx), file.ID)
	if err != nil {
		return nil, err
	}
	if found {
		if err := file.MarkProcessed(p.timeProvider.Now()); err != nil {
			return nil, err
		}
		if err := files.Update(ctx, file); err != nil {
			return nil, fmt.Errorf("failed to mark file as processed: %w", err)
		}
		return &usecase.ProcessingOutcome{
			FileID:           file.ID,
			Status:           file.Status,
			TransactionCount: count,
			AlreadyProcessed: true,
		}, nil
	}

	return p.persist(ctx, file, result.Records, log)
}

func (p *Processor) parse(ctx context.Context, locator string) (*cnab.ParseResult, error) {
	content, err := p.storage.Fetch(ctx, locator)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file content: %w", err)
	}
	defer content.Close()

	result, err := p.parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	return result, nil
}

// persist writes stores, transactions and the Processed status in one database transaction
func (p *Processor) persist(ctx context.Context, file *entity.File, records []cnab.Record, log coreport.Logger) (outcome *usecase.ProcessingOutcome, err error) {
	txCtx, err := p.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := p.uow.Rollback(txCtx); rbErr != nil {
			log.Error("Failed to roll back file transaction", map[string]any{
				"error":          rbErr.Error(),
				"original_error": fmt.Sprint(err),
			})
		}
	}()

	stores := p.uow.GetStoreRepository(txCtx)
	groups := GroupByStore(records)

	keys := make([]entity.StoreKey, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	resolved, err := p.resolver.ResolveAll(txCtx, stores, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stores: %w", err)
	}

	now := p.timeProvider.Now()
	transactions := make([]*entity.Transaction, 0, len(records))
	created := 0

	for _, g := range groups {
		rs := resolved[g.Key]
		if rs.Created {
			created++
		} else {
			rs.Store.Touch(now)
			if err = stores.Update(txCtx, rs.Store); err != nil {
				return nil, fmt.Errorf("failed to update store %s: %w", g.Key, err)
			}
		}

		for _, rec := range g.Records {
			tx, buildErr := entity.NewTransaction(file.ID, rs.Store.ID, rec.TypeCode, rec.Amount,
				rec.Date, rec.Time, rec.CardRef, rec.SubjectID, now)
			if buildErr != nil {
				err = fmt.Errorf("line %d: %w", rec.LineNumber, buildErr)
				return nil, err
			}
			transactions = append(transactions, tx)
		}
	}

	if err = p.uow.GetTransactionRepository(txCtx).AddRange(txCtx, transactions); err != nil {
		return nil, fmt.Errorf("failed to insert transactions: %w", err)
	}

	if err = file.MarkProcessed(now); err != nil {
		return nil, err
	}
	if err = p.uow.GetFileRepository(txCtx).Update(txCtx, file); err != nil {
		return nil, fmt.Errorf("failed to mark file as processed: %w", err)
	}

	if err = p.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit file transaction: %w", err)
	}
	committed = true

	log.Info("File processed", map[string]any{
		"transaction_count": len(transactions),
		"store_count":       len(groups),
		"stores_created":    created,
	})

	return &usecase.ProcessingOutcome{
		FileID:           file.ID,
		Status:           file.Status,
		TransactionCount: len(transactions),
		StoreCount:       len(groups),
	}, nil
}

// reject records a validation failure on the file and returns the permanent failure
func (p *Processor) reject(ctx context.Context, file *entity.File, cause errs.FailureCause, prefix string, messages []string, log coreport.Logger) error {
	summary := SummarizeErrors(prefix, messages, p.summaryLimit)

	if err := file.MarkRejected(summary, p.timeProvider.Now()); err != nil {
		return err
	}
	if err := p.uow.GetFileRepository(ctx).Update(ctx, file); err != nil {
		return fmt.Errorf("failed to mark file as rejected: %w", err)
	}

	log.Warn("File rejected", map[string]any{
		"cause":       string(cause),
		"error_count": len(messages),
		"summary":     summary,
	})
	return errs.NewRejectionFailure(file.ID.String(), cause, summary)
}

// recordFailure makes a best-effort attempt to mark the file Rejected after an unhandled error.
// Cancellation leaves the file in Processing so that a redelivery can resume it.
func (p *Processor) recordFailure(ctx context.Context, fileID uuid.UUID, cause error, log coreport.Logger) {
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		log.Warn("File processing interrupted, leaving file in processing", map[string]any{"error": cause.Error()})
		return
	}

	files := p.uow.GetFileRepository(ctx)
	current, err := files.GetByID(ctx, fileID)
	if err != nil {
		log.Error("Failed to reload file to record failure", map[string]any{
			"error":          err.Error(),
			"original_error": cause.Error(),
		})
		return
	}
	if current.Status.IsTerminal() {
		return
	}
	if current.Status == entity.FileStatusUploaded {
		if err := current.StartProcessing(); err != nil {
			return
		}
	}

	if err := current.MarkRejected(truncate(cause.Error(), MaxErrorMessageLength), p.timeProvider.Now()); err != nil {
		return
	}
	if err := files.Update(ctx, current); err != nil {
		log.Error("Failed to record processing failure on file", map[string]any{
			"error":          err.Error(),
			"original_error": cause.Error(),
		})
	}
}

func (p *Processor) observe(start time.Time, status entity.FileStatus, cause errs.FailureCause) {
	p.metrics.ObserveFile(string(status), string(cause), p.timeProvider.Since(start).Std())
}
