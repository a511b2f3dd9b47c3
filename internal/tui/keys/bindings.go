package keys

import (
	"sort"

	"github.com/gdamore/tcell/v2"
)

// Action represents a keybinding action. The viewer only binds control
// chords so that ordinary keys stay free to be highlighted.
type Action struct {
	Key         tcell.Key
	Rune        rune
	Description string
	Handler     func()
	Visible     bool
}

// Matches returns true if the event matches this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

// Registry holds the viewer's own keybindings.
type Registry struct {
	actions map[string]*Action
}

// NewRegistry creates a new keybinding registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]*Action),
	}
}

// Add registers a keybinding under name, replacing any previous one.
func (r *Registry) Add(name string, action *Action) {
	r.actions[name] = action
}

// Hints returns visible keybinding descriptions sorted by name.
func (r *Registry) Hints() []string {
	names := make([]string, 0, len(r.actions))
	for name, a := range r.actions {
		if a.Visible {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	hints := make([]string, len(names))
	for i, name := range names {
		hints[i] = r.actions[name].Description
	}
	return hints
}

// HandleEvent dispatches a key event to the matching action.
// Returns true if a handler matched.
func (r *Registry) HandleEvent(ev *tcell.EventKey) bool {
	for _, a := range r.actions {
		if a.Matches(ev) {
			a.Handler()
			return true
		}
	}
	return false
}
