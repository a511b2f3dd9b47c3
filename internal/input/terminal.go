package input

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	kc "github.com/matheus3301/keyview/internal/keycode"
)

// TerminalSource turns terminal key events into taps. Terminals report
// presses only, so each key stays held for a fixed hold time.
type TerminalSource struct {
	tracker *Tracker
	hold    time.Duration
	now     func() time.Time
	active  atomic.Bool
}

// NewTerminalSource creates a terminal source with the given hold time.
func NewTerminalSource(tracker *Tracker, hold time.Duration) *TerminalSource {
	return &TerminalSource{tracker: tracker, hold: hold, now: time.Now}
}

func (s *TerminalSource) Name() string { return "terminal" }

// Start enables Feed. Events fed before Start are ignored.
func (s *TerminalSource) Start(context.Context) error {
	s.active.Store(true)
	return nil
}

func (s *TerminalSource) Stop() error {
	s.active.Store(false)
	return nil
}

// Active reports whether the source is started.
func (s *TerminalSource) Active() bool { return s.active.Load() }

// Feed records ev as a tap. It reports whether ev mapped to any key.
func (s *TerminalSource) Feed(ev *tcell.EventKey) bool {
	if !s.active.Load() {
		return false
	}
	codes := Translate(ev)
	if len(codes) == 0 {
		return false
	}
	until := s.now().Add(s.hold)
	for _, c := range codes {
		s.tracker.Tap(c, until)
	}
	return true
}

type runeKey struct {
	code    kc.Code
	shifted bool
}

var runeKeys = map[rune]runeKey{
	' ': {kc.Space, false},
	'`': {kc.Grave, false}, '~': {kc.Grave, true},
	'1': {kc.Key1, false}, '!': {kc.Key1, true},
	'2': {kc.Key2, false}, '@': {kc.Key2, true},
	'3': {kc.Key3, false}, '#': {kc.Key3, true},
	'4': {kc.Key4, false}, '$': {kc.Key4, true},
	'5': {kc.Key5, false}, '%': {kc.Key5, true},
	'6': {kc.Key6, false}, '^': {kc.Key6, true},
	'7': {kc.Key7, false}, '&': {kc.Key7, true},
	'8': {kc.Key8, false}, '*': {kc.Key8, true},
	'9': {kc.Key9, false}, '(': {kc.Key9, true},
	'0': {kc.Key0, false}, ')': {kc.Key0, true},
	'-': {kc.Minus, false}, '_': {kc.Minus, true},
	'=': {kc.Equal, false}, '+': {kc.Equal, true},
	'[': {kc.LeftBrace, false}, '{': {kc.LeftBrace, true},
	']': {kc.RightBrace, false}, '}': {kc.RightBrace, true},
	'\\': {kc.Backslash, false}, '|': {kc.Backslash, true},
	';': {kc.Semicolon, false}, ':': {kc.Semicolon, true},
	'\'': {kc.Apostrophe, false}, '"': {kc.Apostrophe, true},
	',': {kc.Comma, false}, '<': {kc.Comma, true},
	'.': {kc.Dot, false}, '>': {kc.Dot, true},
	'/': {kc.Slash, false}, '?': {kc.Slash, true},
}

var letterKeys = [26]kc.Code{
	kc.A, kc.B, kc.C, kc.D, kc.E, kc.F, kc.G, kc.H, kc.I, kc.J, kc.K, kc.L, kc.M,
	kc.N, kc.O, kc.P, kc.Q, kc.R, kc.S, kc.T, kc.U, kc.V, kc.W, kc.X, kc.Y, kc.Z,
}

var specialKeys = map[tcell.Key]kc.Code{
	tcell.KeyEnter:      kc.Enter,
	tcell.KeyTab:        kc.Tab,
	tcell.KeyBackspace:  kc.Backspace,
	tcell.KeyBackspace2: kc.Backspace,
	tcell.KeyEscape:     kc.Esc,
	tcell.KeyUp:         kc.Up,
	tcell.KeyDown:       kc.Down,
	tcell.KeyLeft:       kc.Left,
	tcell.KeyRight:      kc.Right,
	tcell.KeyHome:       kc.Home,
	tcell.KeyEnd:        kc.End,
	tcell.KeyPgUp:       kc.PageUp,
	tcell.KeyPgDn:       kc.PageDown,
	tcell.KeyInsert:     kc.Insert,
	tcell.KeyDelete:     kc.Delete,
	tcell.KeyPause:      kc.Pause,
	tcell.KeyPrint:      kc.SysRq,
}

var functionKeys = [12]kc.Code{
	kc.F1, kc.F2, kc.F3, kc.F4, kc.F5, kc.F6, kc.F7, kc.F8, kc.F9, kc.F10, kc.F11, kc.F12,
}

// Translate maps a terminal key event to the physical keys that most
// likely produced it, modifiers included. Unknown events map to nothing.
func Translate(ev *tcell.EventKey) []kc.Code {
	var codes []kc.Code
	mods := ev.Modifiers()

	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r >= 'a' && r <= 'z':
			codes = append(codes, letterKeys[r-'a'])
		case r >= 'A' && r <= 'Z':
			codes = append(codes, letterKeys[r-'A'])
			mods |= tcell.ModShift
		default:
			rk, ok := runeKeys[r]
			if !ok {
				return nil
			}
			codes = append(codes, rk.code)
			if rk.shifted {
				mods |= tcell.ModShift
			}
		}
	case k == tcell.KeyBacktab:
		codes = append(codes, kc.Tab)
		mods |= tcell.ModShift
	case k == tcell.KeyNUL:
		codes = append(codes, kc.Space)
		mods |= tcell.ModCtrl
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		codes = append(codes, functionKeys[k-tcell.KeyF1])
	default:
		if c, ok := specialKeys[k]; ok {
			codes = append(codes, c)
		} else if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			codes = append(codes, letterKeys[k-tcell.KeyCtrlA])
			mods |= tcell.ModCtrl
		} else {
			return nil
		}
	}

	if mods&tcell.ModShift != 0 {
		codes = append(codes, kc.LeftShift)
	}
	if mods&tcell.ModCtrl != 0 {
		codes = append(codes, kc.LeftCtrl)
	}
	if mods&tcell.ModAlt != 0 {
		codes = append(codes, kc.LeftAlt)
	}
	if mods&tcell.ModMeta != 0 {
		codes = append(codes, kc.LeftMeta)
	}
	return codes
}
