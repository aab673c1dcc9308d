package processing

import (
	"context"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/usecase"
)

// RetryPolicy controls redelivery of files after transient failures
type RetryPolicy struct {
	MaxRetries    int
	RetryInterval coreport.Duration
	MaxInterval   coreport.Duration
	JitterFactor  float64 // 0.0-1.0
}

// DefaultRetryPolicy returns the default retry policy
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		RetryInterval: 500 * coreport.Millisecond,
		MaxInterval:   30 * coreport.Second,
		JitterFactor:  0.2,
	}
}

// Backoff returns the delay before retry number attempt (0-based): exponential, capped, with jitter
func (r RetryPolicy) Backoff(attempt int) coreport.Duration {
	backoff := r.RetryInterval * coreport.Duration(1<<uint(attempt))
	if backoff > r.MaxInterval || backoff <= 0 {
		backoff = r.MaxInterval
	}
	if r.JitterFactor > 0 {
		backoff += coreport.Duration(float64(backoff) * r.JitterFactor * rand.Float64())
	}
	return backoff
}

// DispatcherConfig sizes the worker pool
type DispatcherConfig struct {
	Workers   int
	QueueSize int
	Retry     RetryPolicy
}

// Dispatcher is the in-process processing queue. It runs at most one orchestrator invocation
// per file at a time, redelivers transient failures and drops permanent ones.
type Dispatcher struct {
	processor    usecase.FileProcessor
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.ProcessingMetrics
	config       DispatcherConfig

	jobs     chan usecase.ProcessingJob
	inFlight sync.Map // map[uuid.UUID]struct{}
	workers  sync.WaitGroup

	// guards jobs against sends after Shutdown closed it
	mu     sync.RWMutex
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDispatcher creates a dispatcher; call Start to launch its workers
func NewDispatcher(
	processor usecase.FileProcessor,
	config DispatcherConfig,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.ProcessingMetrics,
) *Dispatcher {
	if processor == nil {
		panic("file processor cannot be nil")
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 100
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		processor:    processor,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		config:       config,
		jobs:         make(chan usecase.ProcessingJob, config.QueueSize),
		ctx:          ctx,
		cancel:       cancel,
	}
}

var _ usecase.ProcessingQueue = (*Dispatcher)(nil)

// Start launches the worker goroutines
func (d *Dispatcher) Start() {
	d.logger.Info("Starting processing workers", map[string]any{
		"workers":    d.config.Workers,
		"queue_size": d.config.QueueSize,
	})
	for i := 0; i < d.config.Workers; i++ {
		d.workers.Add(1)
		go d.work(i)
	}
}

// Enqueue schedules a file without blocking
func (d *Dispatcher) Enqueue(ctx context.Context, job usecase.ProcessingJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return errs.ErrQueueFull
	}

	select {
	case d.jobs <- job:
		d.logger.Debug("File enqueued for processing", map[string]any{
			"file_id": job.FileID.String(),
		})
		return nil
	default:
		d.logger.Warn("Processing queue is full", map[string]any{
			"file_id":    job.FileID.String(),
			"queue_size": d.config.QueueSize,
		})
		return errs.ErrQueueFull
	}
}

// ProcessNow runs a file on the caller's goroutine, unless a worker already holds it
func (d *Dispatcher) ProcessNow(ctx context.Context, fileID uuid.UUID, locator string) (*usecase.ProcessingOutcome, error) {
	if !d.acquire(fileID) {
		return nil, errs.ErrFileInFlight
	}
	defer d.release(fileID)
	return d.processor.Process(ctx, fileID, locator)
}

// InFlight reports whether fileID is currently being processed
func (d *Dispatcher) InFlight(fileID uuid.UUID) bool {
	_, ok := d.inFlight.Load(fileID)
	return ok
}

func (d *Dispatcher) acquire(fileID uuid.UUID) bool {
	_, loaded := d.inFlight.LoadOrStore(fileID, struct{}{})
	return !loaded
}

func (d *Dispatcher) release(fileID uuid.UUID) {
	d.inFlight.Delete(fileID)
}

func (d *Dispatcher) work(id int) {
	defer d.workers.Done()

	for job := range d.jobs {
		d.handle(job)
	}

	d.logger.Debug("Processing worker stopped", map[string]any{"worker": id})
}

// handle processes one job, retrying transient failures on the same worker
func (d *Dispatcher) handle(job usecase.ProcessingJob) {
	fileID := job.FileID.String()

	if !d.acquire(job.FileID) {
		d.logger.Info("File already in flight, dropping duplicate delivery", map[string]any{"file_id": fileID})
		return
	}
	defer d.release(job.FileID)

	for {
		outcome, err := d.processor.Process(d.ctx, job.FileID, job.Locator)
		if err == nil {
			d.logger.Info("File processing completed", map[string]any{
				"file_id":           fileID,
				"status":            string(outcome.Status),
				"transaction_count": outcome.TransactionCount,
				"already_processed": outcome.AlreadyProcessed,
				"attempt":           job.Attempt + 1,
			})
			return
		}

		cause := string(errs.CauseInfrastructure)
		fields := map[string]any{"file_id": fileID, "attempt": job.Attempt + 1, "error": err.Error()}
		if failure, ok := errs.AsProcessingFailure(err); ok {
			cause = string(failure.Cause)
			fields = failure.LogFields()
			fields["attempt"] = job.Attempt + 1
		}

		if !errs.IsTransient(err) {
			d.logger.Warn("File processing failed permanently", fields)
			d.metrics.ObserveDeadLetter(cause)
			return
		}
		if job.Attempt >= d.config.Retry.MaxRetries {
			d.logger.Error("File processing retries exhausted", fields)
			d.metrics.ObserveDeadLetter(cause)
			return
		}

		delay := d.config.Retry.Backoff(job.Attempt)
		fields["retry_after"] = delay.Std().String()
		d.logger.Warn("Transient processing failure, retrying", fields)
		d.metrics.ObserveRetry()

		if err := d.timeProvider.Sleep(d.ctx, delay); err != nil {
			d.logger.Warn("Retry abandoned during shutdown", map[string]any{"file_id": fileID})
			return
		}
		job.Attempt++
	}
}

// Shutdown stops accepting jobs, lets workers drain the queue and waits for them.
// When ctx expires first, in-progress runs are cancelled.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.logger.Info("Shutting down processing dispatcher", nil)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("Processing dispatcher shut down successfully", nil)
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		d.logger.Warn("Processing dispatcher shutdown timed out, in-flight files cancelled", nil)
		return ctx.Err()
	}
}
