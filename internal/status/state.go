package status

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/keyview/internal/bus"
)

// State is the health of the input side of the viewer.
type State string

const (
	Starting     State = "STARTING"
	Listening    State = "LISTENING"     // reading keyboard devices
	TerminalOnly State = "TERMINAL_ONLY" // terminal key events only, no releases
	Degraded     State = "DEGRADED"      // some devices were lost
	Error        State = "ERROR"
	Stopped      State = "STOPPED"
)

// KindStatusChanged is published on every transition.
const KindStatusChanged = "input.status_changed"

// validTransitions defines allowed state transitions.
var validTransitions = map[State][]State{
	Starting:     {Listening, TerminalOnly, Error, Stopped},
	Listening:    {Degraded, Error, Stopped},
	Degraded:     {Error, Stopped},
	TerminalOnly: {Stopped},
	Error:        {Starting, TerminalOnly, Stopped},
	Stopped:      {},
}

// Machine tracks and enforces input-source state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewMachine creates a new state machine starting in Starting state.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Starting,
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition moves to a new state. Returns error if the transition is invalid.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	allowed := validTransitions[m.current]
	if !slices.Contains(allowed, to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	if m.bus != nil {
		m.bus.Publish(bus.Event{
			Kind:      KindStatusChanged,
			Timestamp: time.Now(),
			Payload: StatusChange{
				From: from,
				To:   to,
			},
		})
	}
	return nil
}

// StatusChange is the payload for status change events.
type StatusChange struct {
	From State
	To   State
}
