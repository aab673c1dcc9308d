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
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/usecase"
	mcore "github.com/amirhossein-jamali/cnab-processor/mocks/port/core"
	muse "github.com/amirhossein-jamali/cnab-processor/mocks/port/usecase"
)

func newQuietLogger(t *testing.T) *mcore.MockLogger {
	logger := mcore.NewMockLogger(t)
	logger.On("With", mock.Anything).Return(logger).Maybe()
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()
	return logger
}

func testDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Workers:   2,
		QueueSize: 10,
		Retry: RetryPolicy{
			MaxRetries:    2,
			RetryInterval: 100 * coreport.Millisecond,
			MaxInterval:   coreport.Second,
		},
	}
}

func TestNewDispatcher(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		d := NewDispatcher(muse.NewMockFileProcessor(t), DispatcherConfig{}, mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)

		assert.Equal(t, 1, d.config.Workers)
		assert.Equal(t, 100, d.config.QueueSize)
		assert.IsType(t, nopMetrics{}, d.metrics)
	})

	t.Run("should panic without a processor", func(t *testing.T) {
		assert.Panics(t, func() {
			NewDispatcher(nil, testDispatcherConfig(), mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)
		})
	})
}

func TestRetryPolicy_Backoff(t *testing.T) {
	policy := RetryPolicy{RetryInterval: 100 * coreport.Millisecond, MaxInterval: coreport.Second}

	expected := []coreport.Duration{
		100 * coreport.Millisecond,
		200 * coreport.Millisecond,
		400 * coreport.Millisecond,
		800 * coreport.Millisecond,
		coreport.Second,
		coreport.Second,
	}
	for attempt, want := range expected {
		assert.Equal(t, want, policy.Backoff(attempt), "attempt %d", attempt)
	}

	policy.JitterFactor = 0.5
	for i := 0; i < 20; i++ {
		got := policy.Backoff(1)
		assert.GreaterOrEqual(t, got, 200*coreport.Millisecond)
		assert.LessOrEqual(t, got, 300*coreport.Millisecond)
	}
}

func TestDispatcher_Enqueue(t *testing.T) {
	t.Run("should process queued files", func(t *testing.T) {
		processor := muse.NewMockFileProcessor(t)
		d := NewDispatcher(processor, testDispatcherConfig(), mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)

		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		for _, id := range ids {
			processor.On("Process", mock.Anything, id, "loc-"+id.String()).
				Return(&usecase.ProcessingOutcome{FileID: id, Status: entity.FileStatusProcessed}, nil).Once()
		}

		d.Start()
		for _, id := range ids {
			require.NoError(t, d.Enqueue(context.Background(), usecase.ProcessingJob{FileID: id, Locator: "loc-" + id.String()}))
		}
		require.NoError(t, d.Shutdown(context.Background()))

		processor.AssertNumberOfCalls(t, "Process", len(ids))
	})

	t.Run("should fail when the queue is full", func(t *testing.T) {
		cfg := testDispatcherConfig()
		cfg.QueueSize = 1
		d := NewDispatcher(muse.NewMockFileProcessor(t), cfg, mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)

		// workers are not started so the first job stays queued
		require.NoError(t, d.Enqueue(context.Background(), usecase.ProcessingJob{FileID: uuid.New()}))
		err := d.Enqueue(context.Background(), usecase.ProcessingJob{FileID: uuid.New()})

		assert.ErrorIs(t, err, errs.ErrQueueFull)
	})

	t.Run("should refuse jobs after shutdown", func(t *testing.T) {
		d := NewDispatcher(muse.NewMockFileProcessor(t), testDispatcherConfig(), mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)
		d.Start()
		require.NoError(t, d.Shutdown(context.Background()))

		err := d.Enqueue(context.Background(), usecase.ProcessingJob{FileID: uuid.New()})

		assert.ErrorIs(t, err, errs.ErrQueueFull)
	})

	t.Run("should return the context error when cancelled", func(t *testing.T) {
		d := NewDispatcher(muse.NewMockFileProcessor(t), testDispatcherConfig(), mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := d.Enqueue(ctx, usecase.ProcessingJob{FileID: uuid.New()})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDispatcher_Retries(t *testing.T) {
	t.Run("should retry transient failures with backoff", func(t *testing.T) {
		processor := muse.NewMockFileProcessor(t)
		clock := mcore.NewMockTimeProvider(t)
		metrics := mcore.NewMockProcessingMetrics(t)
		d := NewDispatcher(processor, testDispatcherConfig(), clock, newQuietLogger(t), metrics)

		id := uuid.New()
		processor.On("Process", mock.Anything, id, "loc").
			Return(nil, errs.NewInfrastructureFailure(id.String(), errs.ErrDatabaseConnection)).Once()
		processor.On("Process", mock.Anything, id, "loc").
			Return(&usecase.ProcessingOutcome{FileID: id, Status: entity.FileStatusProcessed}, nil).Once()
		clock.EXPECT().Sleep(mock.Anything, 100*coreport.Millisecond).Return(nil).Once()
		metrics.On("ObserveRetry").Once()

		d.handle(usecase.ProcessingJob{FileID: id, Locator: "loc"})

		processor.AssertNumberOfCalls(t, "Process", 2)
		assert.False(t, d.InFlight(id))
	})

	t.Run("should give up after the configured retries", func(t *testing.T) {
		processor := muse.NewMockFileProcessor(t)
		clock := mcore.NewMockTimeProvider(t)
		metrics := mcore.NewMockProcessingMetrics(t)
		d := NewDispatcher(processor, testDispatcherConfig(), clock, newQuietLogger(t), metrics)

		id := uuid.New()
		processor.On("Process", mock.Anything, id, "loc").
			Return(nil, errs.NewInfrastructureFailure(id.String(), errs.ErrStorageUnavailable)).Times(3)
		clock.EXPECT().Sleep(mock.Anything, 100*coreport.Millisecond).Return(nil).Once()
		clock.EXPECT().Sleep(mock.Anything, 200*coreport.Millisecond).Return(nil).Once()
		metrics.On("ObserveRetry").Twice()
		metrics.On("ObserveDeadLetter", "infrastructure").Once()

		d.handle(usecase.ProcessingJob{FileID: id, Locator: "loc"})

		processor.AssertNumberOfCalls(t, "Process", 3)
	})

	t.Run("should not retry permanent failures", func(t *testing.T) {
		processor := muse.NewMockFileProcessor(t)
		metrics := mcore.NewMockProcessingMetrics(t)
		d := NewDispatcher(processor, testDispatcherConfig(), mcore.NewMockTimeProvider(t), newQuietLogger(t), metrics)

		id := uuid.New()
		processor.On("Process", mock.Anything, id, "loc").
			Return(nil, errs.NewRejectionFailure(id.String(), errs.CauseStructural, "structural validation failed")).Once()
		metrics.On("ObserveDeadLetter", "structural").Once()

		d.handle(usecase.ProcessingJob{FileID: id, Locator: "loc"})

		processor.AssertNumberOfCalls(t, "Process", 1)
	})

	t.Run("should stop retrying when shutting down", func(t *testing.T) {
		processor := muse.NewMockFileProcessor(t)
		clock := mcore.NewMockTimeProvider(t)
		metrics := mcore.NewMockProcessingMetrics(t)
		d := NewDispatcher(processor, testDispatcherConfig(), clock, newQuietLogger(t), metrics)

		id := uuid.New()
		processor.On("Process", mock.Anything, id, "loc").
			Return(nil, errs.NewInfrastructureFailure(id.String(), errs.ErrDatabaseConnection)).Once()
		clock.EXPECT().Sleep(mock.Anything, mock.Anything).Return(context.Canceled).Once()
		metrics.On("ObserveRetry").Once()

		d.handle(usecase.ProcessingJob{FileID: id, Locator: "loc"})

		processor.AssertNumberOfCalls(t, "Process", 1)
	})
}

func TestDispatcher_InFlightGuard(t *testing.T) {
	t.Run("should refuse a synchronous run while a worker holds the file", func(t *testing.T) {
		processor := muse.NewMockFileProcessor(t)
		d := NewDispatcher(processor, testDispatcherConfig(), mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)

		id := uuid.New()
		require.True(t, d.acquire(id))

		outcome, err := d.ProcessNow(context.Background(), id, "")

		assert.Nil(t, outcome)
		assert.ErrorIs(t, err, errs.ErrFileInFlight)
		processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should drop a queued duplicate of a file in flight", func(t *testing.T) {
		processor := muse.NewMockFileProcessor(t)
		d := NewDispatcher(processor, testDispatcherConfig(), mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)

		id := uuid.New()
		require.True(t, d.acquire(id))

		d.handle(usecase.ProcessingJob{FileID: id})

		processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
		assert.True(t, d.InFlight(id))
	})

	t.Run("should run synchronously and release the file", func(t *testing.T) {
		processor := muse.NewMockFileProcessor(t)
		d := NewDispatcher(processor, testDispatcherConfig(), mcore.NewMockTimeProvider(t), newQuietLogger(t), nil)

		id := uuid.New()
		processor.On("Process", mock.Anything, id, "").Run(func(mock.Arguments) {
			assert.True(t, d.InFlight(id))
		}).Return(&usecase.ProcessingOutcome{FileID: id, Status: entity.FileStatusProcessed}, nil).Once()

		outcome, err := d.ProcessNow(context.Background(), id, "")

		require.NoError(t, err)
		assert.Equal(t, entity.FileStatusProcessed, outcome.Status)
		assert.False(t, d.InFlight(id))
	})
}
