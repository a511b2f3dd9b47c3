package sync

import (
	"slices"
	"time"

	"github.com/matheus3301/keyview/internal/bus"
	"github.com/matheus3301/keyview/internal/keycode"
	"go.uber.org/zap"
)

// KindKeysChanged is published on the bus after every acted-on frame.
const KindKeysChanged = "keys.changed"

// Change is the payload of a keys.changed event.
type Change struct {
	Pressed []string // every held key, including unbound ones
	Bound   int      // how many of them have an element
}

// Loop reconciles element highlight state with the pressed-key snapshot.
// Tick must be called from a single goroutine.
type Loop struct {
	board  *Board
	bus    *bus.Bus
	logger *zap.Logger

	primed bool
	prev   []keycode.Code
	held   map[keycode.Code]struct{}
}

// NewLoop creates a loop over board. b and logger may be nil.
func NewLoop(board *Board, b *bus.Bus, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		board:  board,
		bus:    b,
		logger: logger,
		prev:   make([]keycode.Code, 0, board.Len()),
		held:   make(map[keycode.Code]struct{}, board.Len()),
	}
}

// Tick applies one frame. snapshot is the set of held keys, sorted and
// without duplicates; it is not retained. Tick returns false without
// touching the board when snapshot equals the last applied one.
func (l *Loop) Tick(snapshot []keycode.Code) bool {
	if l.primed && slices.Equal(snapshot, l.prev) {
		return false
	}

	clear(l.held)
	for _, c := range snapshot {
		l.held[c] = struct{}{}
	}

	bound := 0
	for i := range l.board.bindings {
		bd := &l.board.bindings[i]
		want := Released
		if _, ok := l.held[bd.Code]; ok {
			want = Pressed
			bound++
		}
		if bd.State != want {
			bd.State = want
			bd.Element.SetState(want)
		}
	}

	l.prev = append(l.prev[:0], snapshot...)
	l.primed = true

	if l.bus != nil {
		l.bus.Publish(bus.Event{
			Kind:      KindKeysChanged,
			Timestamp: time.Now(),
			Payload:   Change{Pressed: keycode.Names(snapshot), Bound: bound},
		})
	}
	return true
}

// Reset makes the next Tick act regardless of the snapshot.
func (l *Loop) Reset() {
	l.primed = false
}

// Board returns the board the loop drives.
func (l *Loop) Board() *Board { return l.board }
