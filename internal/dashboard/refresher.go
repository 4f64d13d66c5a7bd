package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RefreshFunc reloads a view's data.
type RefreshFunc func(context.Context) error

// Refresher periodically re-runs a view's refresh. Its lifetime is bound to
// the view: Stop cancels the loop and waits for it to exit. Failures are
// logged and the next tick tries again; there is no backoff.
type Refresher struct {
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewRefresher builds a refresher with the given poll interval.
func NewRefresher(interval time.Duration, logger *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Refresher{interval: interval, logger: logger}
}

// Start runs an immediate refresh and then one per interval until Stop is
// called or the parent context ends.
func (r *Refresher) Start(ctx context.Context, refresh RefreshFunc) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)

		if err := refresh(ctx); err != nil {
			r.logger.Warn("refresh failed", zap.Error(err))
		}

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := refresh(ctx); err != nil {
					r.logger.Warn("refresh failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for it to finish.
func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}
