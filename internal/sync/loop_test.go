package sync

import (
	"slices"
	"testing"
	"time"

	"github.com/matheus3301/keyview/internal/bus"
	kc "github.com/matheus3301/keyview/internal/keycode"
	"github.com/matheus3301/keyview/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeElement struct {
	label  string
	state  State
	writes int
}

func (e *fakeElement) SetState(s State) {
	e.state = s
	e.writes++
}

type fakeRow struct {
	scene *fakeScene
}

func (r *fakeRow) AddSpacer(width float64) {
	r.scene.spacers++
}

func (r *fakeRow) AddKey(label string, width float64) Element {
	el := &fakeElement{label: label}
	r.scene.elements = append(r.scene.elements, el)
	return el
}

type fakeScene struct {
	rows     int
	spacers  int
	elements []*fakeElement
}

func (s *fakeScene) AddRow() Row {
	s.rows++
	return &fakeRow{scene: s}
}

func (s *fakeScene) writes() int {
	n := 0
	for _, e := range s.elements {
		n += e.writes
	}
	return n
}

func newFullBoard(t *testing.T) (*Loop, *fakeScene) {
	t.Helper()
	scene := &fakeScene{}
	board := Bind(layout.Build(), scene)
	return NewLoop(board, nil, nil), scene
}

// snap sorts codes the way the input tracker does.
func snap(codes ...kc.Code) []kc.Code {
	out := slices.Clone(codes)
	slices.Sort(out)
	return out
}

// assertPressedExactly checks both the bindings and the elements behind them.
func assertPressedExactly(t *testing.T, l *Loop, want ...kc.Code) {
	t.Helper()
	set := map[kc.Code]bool{}
	for _, c := range want {
		set[c] = true
	}
	for _, bd := range l.Board().Bindings() {
		wantState := Released
		if set[bd.Code] {
			wantState = Pressed
		}
		assert.Equal(t, wantState, bd.State, "binding %s", bd.Code)
		assert.Equal(t, wantState, bd.Element.(*fakeElement).state, "element %s", bd.Code)
	}
}

func TestBindCompleteness(t *testing.T) {
	rows := layout.Build()
	keys, spacers := layout.Count(rows)

	scene := &fakeScene{}
	board := Bind(rows, scene)

	assert.Equal(t, keys, board.Len())
	assert.Len(t, scene.elements, keys)
	assert.Equal(t, spacers, scene.spacers)
	assert.Equal(t, len(rows), scene.rows)

	for i, bd := range board.Bindings() {
		assert.NotEqual(t, kc.None, bd.Code)
		assert.Equal(t, Released, bd.State)
		assert.Same(t, scene.elements[i], bd.Element)
	}
	assert.Zero(t, scene.writes(), "binding must not write state")
}

func TestBindKeepsLayoutOrder(t *testing.T) {
	scene := &fakeScene{}
	board := Bind(layout.Build(), scene)

	bindings := board.Bindings()
	assert.Equal(t, kc.Esc, bindings[0].Code)
	assert.Equal(t, kc.F1, bindings[1].Code)
	assert.Equal(t, "ESC", scene.elements[0].label)
	assert.Equal(t, kc.RightCtrl, bindings[len(bindings)-1].Code)
}

func TestBindPanicsOnDuplicateCode(t *testing.T) {
	rows := [][]layout.Descriptor{
		{{Code: kc.A, Label: "A", Width: 1}, {Code: kc.A, Label: "A", Width: 1}},
	}
	assert.Panics(t, func() { Bind(rows, &fakeScene{}) })
}

func TestTickNothingHeld(t *testing.T) {
	l, _ := newFullBoard(t)

	assert.True(t, l.Tick(nil), "first tick always acts")
	assertPressedExactly(t, l)
	assert.Empty(t, l.Board().Pressed())
}

func TestTickSingleModifier(t *testing.T) {
	l, _ := newFullBoard(t)

	l.Tick(snap(kc.LeftShift))
	assertPressedExactly(t, l, kc.LeftShift)

	st, ok := l.Board().State(kc.RightShift)
	require.True(t, ok)
	assert.Equal(t, Released, st)
}

func TestTickChord(t *testing.T) {
	l, _ := newFullBoard(t)

	l.Tick(snap(kc.A, kc.S, kc.D))
	assertPressedExactly(t, l, kc.A, kc.S, kc.D)
	assert.Equal(t, []kc.Code{kc.A, kc.S, kc.D}, l.Board().Pressed())
}

func TestTickTransitionsLeaveNoStaleHighlight(t *testing.T) {
	l, _ := newFullBoard(t)

	steps := [][]kc.Code{
		snap(kc.A),
		snap(kc.A, kc.B),
		snap(kc.B),
		snap(),
	}
	for _, s := range steps {
		require.True(t, l.Tick(s))
		assertPressedExactly(t, l, s...)
	}
}

func TestTickUnboundCodesAreIgnored(t *testing.T) {
	l, scene := newFullBoard(t)

	// Arrows are not on the full-size table; kc.None can never be bound.
	l.Tick(snap(kc.None, kc.Up, kc.Q))
	assertPressedExactly(t, l, kc.Q)

	_, bound := l.Board().State(kc.None)
	assert.False(t, bound)
	for _, e := range scene.elements {
		assert.NotEmpty(t, e.label, "spacers never become elements")
	}
}

func TestTickIdempotent(t *testing.T) {
	l, scene := newFullBoard(t)

	require.True(t, l.Tick(snap(kc.A, kc.LeftCtrl)))
	writes := scene.writes()
	assert.Equal(t, 2, writes)

	assert.False(t, l.Tick(snap(kc.A, kc.LeftCtrl)))
	assert.Equal(t, writes, scene.writes())
	assertPressedExactly(t, l, kc.A, kc.LeftCtrl)
}

func TestTickDoesNotRetainSnapshot(t *testing.T) {
	l, _ := newFullBoard(t)

	buf := snap(kc.A)
	l.Tick(buf)
	buf[0] = kc.B

	// The caller reused its buffer; the loop still sees a change.
	assert.True(t, l.Tick(buf))
	assertPressedExactly(t, l, kc.B)
}

func TestTickWritesOnlyChangedElements(t *testing.T) {
	l, scene := newFullBoard(t)

	l.Tick(snap(kc.A))
	l.Tick(snap(kc.A, kc.B))

	var a, b *fakeElement
	for _, bd := range l.Board().Bindings() {
		switch bd.Code {
		case kc.A:
			a = bd.Element.(*fakeElement)
		case kc.B:
			b = bd.Element.(*fakeElement)
		}
	}
	assert.Equal(t, 1, a.writes)
	assert.Equal(t, 1, b.writes)
	assert.Equal(t, 2, scene.writes())
}

func TestReset(t *testing.T) {
	l, _ := newFullBoard(t)

	l.Tick(snap(kc.A))
	assert.False(t, l.Tick(snap(kc.A)))

	l.Reset()
	assert.True(t, l.Tick(snap(kc.A)))
	assertPressedExactly(t, l, kc.A)
}

func TestTickPublishesChange(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("keys.", 10)
	defer unsub()

	board := Bind(layout.Build(), &fakeScene{})
	l := NewLoop(board, b, nil)

	l.Tick(snap(kc.A, kc.Up))
	l.Tick(snap(kc.A, kc.Up)) // gated, publishes nothing

	select {
	case evt := <-ch:
		assert.Equal(t, KindKeysChanged, evt.Kind)
		change, ok := evt.Payload.(Change)
		require.True(t, ok)
		assert.Equal(t, []string{"A", "UP"}, change.Pressed)
		assert.Equal(t, 1, change.Bound)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for keys.changed")
	}

	select {
	case evt := <-ch:
		t.Errorf("unexpected event after gated tick: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}
