package sync

import (
	"context"

	"github.com/matheus3301/keyview/internal/bus"
	"go.uber.org/zap"
)

// Reporter writes every pressed-key change to the log.
// It subscribes to "keys." events on the bus.
type Reporter struct {
	bus    *bus.Bus
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// NewReporter creates a reporter.
func NewReporter(b *bus.Bus, logger *zap.Logger) *Reporter {
	return &Reporter{bus: b, logger: logger}
}

// Start subscribes to key events on the bus.
func (r *Reporter) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	ch, unsub := r.bus.Subscribe("keys.", 64)

	go func() {
		defer close(r.done)
		defer unsub()
		for {
			select {
			case evt := <-ch:
				r.handleEvent(evt)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reporter and waits for it to exit.
func (r *Reporter) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}

func (r *Reporter) handleEvent(evt bus.Event) {
	if evt.Kind != KindKeysChanged {
		return
	}
	change, ok := evt.Payload.(Change)
	if !ok {
		return
	}
	r.logger.Info("pressed keys changed",
		zap.Strings("keys", change.Pressed),
		zap.Int("bound", change.Bound),
	)
}
