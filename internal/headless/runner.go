package headless

import (
	"context"
	"time"

	"github.com/matheus3301/keyview/internal/input"
	"github.com/matheus3301/keyview/internal/keycode"
	intsync "github.com/matheus3301/keyview/internal/sync"
	"go.uber.org/zap"
)

// Runner ticks the sync loop from its own goroutine.
type Runner struct {
	loop     *intsync.Loop
	tracker  *input.Tracker
	interval time.Duration
	logger   *zap.Logger

	ticks  int
	acted  int
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner creates a runner that ticks every interval.
func NewRunner(loop *intsync.Loop, tracker *input.Tracker, interval time.Duration, logger *zap.Logger) *Runner {
	return &Runner{loop: loop, tracker: tracker, interval: interval, logger: logger}
}

// Start launches the frame goroutine.
func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	ticker := time.NewTicker(r.interval)
	go func() {
		defer close(r.done)
		defer ticker.Stop()
		r.run(ctx, ticker.C)
	}()
	r.logger.Info("headless runner started",
		zap.Int("keys", r.loop.Board().Len()),
		zap.Duration("interval", r.interval),
	)
}

func (r *Runner) run(ctx context.Context, tick <-chan time.Time) {
	buf := make([]keycode.Code, 0, 16)
	for {
		select {
		case now := <-tick:
			buf = r.tracker.AppendPressed(buf[:0], now)
			r.ticks++
			if r.loop.Tick(buf) {
				r.acted++
			}
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops the frame goroutine and waits for it to exit.
func (r *Runner) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.logger.Info("headless runner stopped",
		zap.Int("frames", r.ticks),
		zap.Int("changes", r.acted),
	)
}
