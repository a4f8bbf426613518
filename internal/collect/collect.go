// Package collect runs the provider paging loops and maps provider records
// into raw model records. Collectors degrade: a failed request is logged and
// ends that page or query, and whatever was gathered so far is returned.
// Only context cancellation is reported as an error.
package collect

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// pacer spaces successive calls at a fixed interval. The first call is not delayed.
type pacer struct {
	lim *rate.Limiter
}

func newPacer(interval time.Duration) *pacer {
	if interval <= 0 {
		return &pacer{lim: rate.NewLimiter(rate.Inf, 1)}
	}
	return &pacer{lim: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *pacer) Wait(ctx context.Context) error {
	return p.lim.Wait(ctx)
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
