package dashboard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRefresherRunsAndStops(t *testing.T) {
	var calls atomic.Int32

	refresher := NewRefresher(10*time.Millisecond, zap.NewNop())
	refresher.Start(context.Background(), func(context.Context) error {
		calls.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	refresher.Stop()
	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestRefresherParentContextCancel(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	refresher := NewRefresher(10*time.Millisecond, zap.NewNop())
	refresher.Start(ctx, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(30 * time.Millisecond)
	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}
