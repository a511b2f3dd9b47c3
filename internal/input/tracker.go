package input

import (
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/keyview/internal/keycode"
)

// Tracker is the live set of held keys shared by all sources.
// Sources write it from their own goroutines; the frame loop reads it
// through AppendPressed.
type Tracker struct {
	mu   sync.Mutex
	held map[string]map[keycode.Code]struct{}
	taps map[keycode.Code]time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		held: make(map[string]map[keycode.Code]struct{}),
		taps: make(map[keycode.Code]time.Time),
	}
}

// Press marks code as held by source.
func (t *Tracker) Press(source string, code keycode.Code) {
	if code == keycode.None {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := t.held[source]
	if keys == nil {
		keys = make(map[keycode.Code]struct{})
		t.held[source] = keys
	}
	keys[code] = struct{}{}
}

// Release marks code as no longer held by source.
func (t *Tracker) Release(source string, code keycode.Code) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.held[source], code)
}

// ReleaseAll drops every key held by source.
func (t *Tracker) ReleaseAll(source string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.held, source)
}

// Tap reports code as held until the given time. Used by sources that see
// presses but no releases.
func (t *Tracker) Tap(code keycode.Code, until time.Time) {
	if code == keycode.None {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if until.After(t.taps[code]) {
		t.taps[code] = until
	}
}

// ClearTaps drops every pending tap.
func (t *Tracker) ClearTaps() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.taps)
}

// AppendPressed appends the held keys at time now to dst, sorted and
// without duplicates, and returns the extended slice. Expired taps are
// pruned.
func (t *Tracker) AppendPressed(dst []keycode.Code, now time.Time) []keycode.Code {
	t.mu.Lock()
	start := len(dst)
	for _, keys := range t.held {
		for c := range keys {
			dst = append(dst, c)
		}
	}
	for c, until := range t.taps {
		if !now.Before(until) {
			delete(t.taps, c)
			continue
		}
		dst = append(dst, c)
	}
	t.mu.Unlock()

	tail := dst[start:]
	slices.Sort(tail)
	return dst[:start+len(slices.Compact(tail))]
}

// Len returns the number of distinct keys held at time now.
func (t *Tracker) Len(now time.Time) int {
	return len(t.AppendPressed(nil, now))
}
