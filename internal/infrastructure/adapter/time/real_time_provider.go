package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface with the system clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new real time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

// Sleep pauses for d or until ctx is done
func (p *RealTimeProvider) Sleep(ctx context.Context, d core.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d.Std())
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
