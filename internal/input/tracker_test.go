package input

import (
	"sync"
	"testing"
	"time"

	kc "github.com/matheus3301/keyview/internal/keycode"
	"github.com/stretchr/testify/assert"
)

func TestTrackerPressRelease(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	tr.Press("kbd0", kc.S)
	tr.Press("kbd0", kc.A)
	tr.Press("kbd0", kc.A) // autorepeat
	assert.Equal(t, []kc.Code{kc.A, kc.S}, tr.AppendPressed(nil, now))

	tr.Release("kbd0", kc.A)
	assert.Equal(t, []kc.Code{kc.S}, tr.AppendPressed(nil, now))

	tr.Release("kbd1", kc.S) // other source: no effect
	assert.Equal(t, 1, tr.Len(now))
}

func TestTrackerUnionAcrossSources(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	tr.Press("kbd0", kc.LeftShift)
	tr.Press("kbd1", kc.LeftShift)
	tr.Press("kbd1", kc.Q)
	assert.Equal(t, []kc.Code{kc.Q, kc.LeftShift}, tr.AppendPressed(nil, now))

	// A key held on two keyboards stays held until both release it.
	tr.Release("kbd0", kc.LeftShift)
	assert.Equal(t, []kc.Code{kc.Q, kc.LeftShift}, tr.AppendPressed(nil, now))

	tr.ReleaseAll("kbd1")
	assert.Empty(t, tr.AppendPressed(nil, now))
}

func TestTrackerIgnoresNone(t *testing.T) {
	tr := NewTracker()
	tr.Press("kbd0", kc.None)
	tr.Tap(kc.None, time.Now().Add(time.Hour))
	assert.Zero(t, tr.Len(time.Now()))
}

func TestTrackerTapsExpire(t *testing.T) {
	tr := NewTracker()
	t0 := time.Unix(1000, 0)

	tr.Tap(kc.A, t0.Add(100*time.Millisecond))
	tr.Tap(kc.A, t0.Add(50*time.Millisecond)) // earlier deadline does not shorten
	tr.Press("kbd0", kc.A)

	assert.Equal(t, []kc.Code{kc.A}, tr.AppendPressed(nil, t0), "tap and press dedupe")

	tr.Release("kbd0", kc.A)
	assert.Equal(t, []kc.Code{kc.A}, tr.AppendPressed(nil, t0.Add(99*time.Millisecond)))
	assert.Empty(t, tr.AppendPressed(nil, t0.Add(100*time.Millisecond)))
}

func TestTrackerAppendReusesBuffer(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.Press("kbd0", kc.B)

	buf := make([]kc.Code, 0, 8)
	buf = tr.AppendPressed(buf[:0], now)
	assert.Equal(t, []kc.Code{kc.B}, buf)
	assert.Equal(t, 8, cap(buf))

	prefix := []kc.Code{kc.Z}
	assert.Equal(t, []kc.Code{kc.Z, kc.B}, tr.AppendPressed(prefix, now))
}

func TestTrackerConcurrentWriters(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				tr.Press(src, kc.A)
				tr.Release(src, kc.A)
			}
			tr.Press(src, kc.Space)
		}(string(rune('a' + i)))
	}
	for j := 0; j < 200; j++ {
		_ = tr.AppendPressed(nil, time.Now())
	}
	wg.Wait()
	assert.Equal(t, []kc.Code{kc.Space}, tr.AppendPressed(nil, time.Now()))
}

func TestTrackerClearTapsKeepsHeld(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	tr.Press("kbd0", kc.LeftCtrl)
	tr.Tap(kc.R, now.Add(time.Second))
	tr.ClearTaps()
	assert.Equal(t, []kc.Code{kc.LeftCtrl}, tr.AppendPressed(nil, now))
}
