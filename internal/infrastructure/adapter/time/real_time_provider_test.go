package time

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
)

func TestRealTimeProvider_Sleep(t *testing.T) {
	tp := NewRealTimeProvider()

	t.Run("should wait for the duration", func(t *testing.T) {
		start := time.Now()
		err := tp.Sleep(context.Background(), 20*core.Millisecond)

		assert.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("should return early when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := tp.Sleep(ctx, core.Minute)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("should not block for non-positive durations", func(t *testing.T) {
		assert.NoError(t, tp.Sleep(context.Background(), 0))
	})
}

func TestRealTimeProvider_Since(t *testing.T) {
	tp := NewRealTimeProvider()
	past := tp.Now().Add(-time.Second)

	assert.GreaterOrEqual(t, tp.Since(past).Std(), time.Second)
}
