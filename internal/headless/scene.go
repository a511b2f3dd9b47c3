// Package headless drives the key bindings without a screen. Every change
// reaches the log through the bus, nothing is drawn.
package headless

import (
	intsync "github.com/matheus3301/keyview/internal/sync"
)

// Key is an element that only remembers its state.
type Key struct {
	Label  string
	Width  float64
	state  intsync.State
	writes int
}

// SetState implements sync.Element.
func (k *Key) SetState(s intsync.State) {
	k.state = s
	k.writes++
}

// State returns the last written state.
func (k *Key) State() intsync.State { return k.state }

// Writes returns how many times SetState was called.
func (k *Key) Writes() int { return k.writes }

// Scene is a sync.Scene that keeps its keys in memory.
type Scene struct {
	rows    int
	spacers int
	keys    []*Key
}

// NewScene creates an empty scene.
func NewScene() *Scene { return &Scene{} }

// AddRow implements sync.Scene.
func (s *Scene) AddRow() intsync.Row {
	s.rows++
	return row{s}
}

// Keys returns the keys in layout order.
func (s *Scene) Keys() []*Key { return s.keys }

// Shape returns the number of rows and spacers added.
func (s *Scene) Shape() (rows, spacers int) { return s.rows, s.spacers }

type row struct{ scene *Scene }

func (r row) AddSpacer(float64) { r.scene.spacers++ }

func (r row) AddKey(label string, width float64) intsync.Element {
	k := &Key{Label: label, Width: width}
	r.scene.keys = append(r.scene.keys, k)
	return k
}
