package sync

import (
	"github.com/matheus3301/keyview/internal/keycode"
	"github.com/matheus3301/keyview/internal/layout"
)

// State is the highlight state of one bound key.
type State uint8

const (
	Released State = iota
	Pressed
)

func (s State) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// Element is the mutable visual handle of one rendered key.
type Element interface {
	SetState(State)
}

// Row receives the slots of one keyboard row, left to right.
type Row interface {
	// AddSpacer reserves an empty, unbordered slot.
	AddSpacer(width float64)
	// AddKey creates a bordered, labelled slot in the released state.
	AddKey(label string, width float64) Element
}

// Scene is the presentation store the binder populates once.
type Scene interface {
	AddRow() Row
}

// Binding ties one key code to its element.
type Binding struct {
	Code    keycode.Code
	Element Element
	State   State
}

// Board is the ordered set of bindings built at startup.
type Board struct {
	bindings []Binding
}

// Bind populates scene from rows and returns the bindings, one per
// non-spacer descriptor in layout order. It panics when rows break the
// layout invariants.
func Bind(rows [][]layout.Descriptor, scene Scene) *Board {
	if err := layout.Validate(rows); err != nil {
		panic("sync: " + err.Error())
	}

	keys, _ := layout.Count(rows)
	b := &Board{bindings: make([]Binding, 0, keys)}
	for _, row := range rows {
		r := scene.AddRow()
		for _, d := range row {
			if d.IsSpacer() {
				r.AddSpacer(d.Width)
				continue
			}
			el := r.AddKey(d.Label, d.Width)
			b.bindings = append(b.bindings, Binding{Code: d.Code, Element: el, State: Released})
		}
	}
	return b
}

// Len returns the number of bound keys.
func (b *Board) Len() int { return len(b.bindings) }

// Bindings returns a copy of the bindings in layout order.
func (b *Board) Bindings() []Binding {
	out := make([]Binding, len(b.bindings))
	copy(out, b.bindings)
	return out
}

// State returns the highlight state of code and whether it is bound.
func (b *Board) State(code keycode.Code) (State, bool) {
	for _, bd := range b.bindings {
		if bd.Code == code {
			return bd.State, true
		}
	}
	return Released, false
}

// Pressed returns the codes currently highlighted, in layout order.
func (b *Board) Pressed() []keycode.Code {
	var out []keycode.Code
	for _, bd := range b.bindings {
		if bd.State == Pressed {
			out = append(out, bd.Code)
		}
	}
	return out
}
