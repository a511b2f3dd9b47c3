package keycode

import (
	"fmt"
	"strconv"
	"strings"
)

// Code identifies one physical key. Values follow the Linux input-event
// numbering so evdev codes convert without a lookup.
type Code uint16

// None marks "no key" (KEY_RESERVED). Spacers carry it.
const None Code = 0

const (
	Esc        Code = 1
	Key1       Code = 2
	Key2       Code = 3
	Key3       Code = 4
	Key4       Code = 5
	Key5       Code = 6
	Key6       Code = 7
	Key7       Code = 8
	Key8       Code = 9
	Key9       Code = 10
	Key0       Code = 11
	Minus      Code = 12
	Equal      Code = 13
	Backspace  Code = 14
	Tab        Code = 15
	Q          Code = 16
	W          Code = 17
	E          Code = 18
	R          Code = 19
	T          Code = 20
	Y          Code = 21
	U          Code = 22
	I          Code = 23
	O          Code = 24
	P          Code = 25
	LeftBrace  Code = 26
	RightBrace Code = 27
	Enter      Code = 28
	LeftCtrl   Code = 29
	A          Code = 30
	S          Code = 31
	D          Code = 32
	F          Code = 33
	G          Code = 34
	H          Code = 35
	J          Code = 36
	K          Code = 37
	L          Code = 38
	Semicolon  Code = 39
	Apostrophe Code = 40
	Grave      Code = 41
	LeftShift  Code = 42
	Backslash  Code = 43
	Z          Code = 44
	X          Code = 45
	C          Code = 46
	V          Code = 47
	B          Code = 48
	N          Code = 49
	M          Code = 50
	Comma      Code = 51
	Dot        Code = 52
	Slash      Code = 53
	RightShift Code = 54
	LeftAlt    Code = 56
	Space      Code = 57
	CapsLock   Code = 58
	F1         Code = 59
	F2         Code = 60
	F3         Code = 61
	F4         Code = 62
	F5         Code = 63
	F6         Code = 64
	F7         Code = 65
	F8         Code = 66
	F9         Code = 67
	F10        Code = 68
	NumLock    Code = 69
	ScrollLock Code = 70
	F11        Code = 87
	F12        Code = 88
	RightCtrl  Code = 97
	SysRq      Code = 99
	RightAlt   Code = 100
	Home       Code = 102
	Up         Code = 103
	PageUp     Code = 104
	Left       Code = 105
	Right      Code = 106
	End        Code = 107
	Down       Code = 108
	PageDown   Code = 109
	Insert     Code = 110
	Delete     Code = 111
	Pause      Code = 119
	LeftMeta   Code = 125
	RightMeta  Code = 126
	Compose    Code = 127
)

var names = map[Code]string{
	Esc: "ESC", Key1: "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9", Key0: "0",
	Minus: "MINUS", Equal: "EQUAL", Backspace: "BACKSPACE", Tab: "TAB",
	Q: "Q", W: "W", E: "E", R: "R", T: "T", Y: "Y", U: "U", I: "I", O: "O", P: "P",
	LeftBrace: "LEFTBRACE", RightBrace: "RIGHTBRACE", Enter: "ENTER",
	LeftCtrl: "LEFTCTRL",
	A: "A", S: "S", D: "D", F: "F", G: "G", H: "H", J: "J", K: "K", L: "L",
	Semicolon: "SEMICOLON", Apostrophe: "APOSTROPHE", Grave: "GRAVE",
	LeftShift: "LEFTSHIFT", Backslash: "BACKSLASH",
	Z: "Z", X: "X", C: "C", V: "V", B: "B", N: "N", M: "M",
	Comma: "COMMA", Dot: "DOT", Slash: "SLASH", RightShift: "RIGHTSHIFT",
	LeftAlt: "LEFTALT", Space: "SPACE", CapsLock: "CAPSLOCK",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	NumLock: "NUMLOCK", ScrollLock: "SCROLLLOCK",
	RightCtrl: "RIGHTCTRL", SysRq: "SYSRQ", RightAlt: "RIGHTALT",
	Home: "HOME", Up: "UP", PageUp: "PAGEUP", Left: "LEFT", Right: "RIGHT",
	End: "END", Down: "DOWN", PageDown: "PAGEDOWN", Insert: "INSERT",
	Delete: "DELETE", Pause: "PAUSE",
	LeftMeta: "LEFTMETA", RightMeta: "RIGHTMETA", Compose: "COMPOSE",
}

// aliases are accepted by Parse in addition to the canonical names.
var aliases = map[string]Code{
	"ESCAPE":    Esc,
	"PERIOD":    Dot,
	"RETURN":    Enter,
	"BACK":      Backspace,
	"CAPS":      CapsLock,
	"LEFTSUPER": LeftMeta, "RIGHTSUPER": RightMeta,
	"MENU": Compose,
}

var byName = func() map[string]Code {
	m := make(map[string]Code, len(names)+len(aliases))
	for c, n := range names {
		m[n] = c
	}
	for n, c := range aliases {
		m[n] = c
	}
	return m
}()

// String returns the canonical name, or "KEY(n)" for codes without one.
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	if c == None {
		return "NONE"
	}
	return "KEY(" + strconv.Itoa(int(c)) + ")"
}

// Known reports whether c has a canonical name.
func (c Code) Known() bool {
	_, ok := names[c]
	return ok
}

// Parse resolves a key name. It is case-insensitive, accepts an optional
// "KEY_" prefix and bare decimal codes.
func Parse(s string) (Code, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "KEY_")
	if name == "" {
		return None, fmt.Errorf("empty key name")
	}
	if c, ok := byName[name]; ok {
		return c, nil
	}
	if n, err := strconv.ParseUint(name, 10, 16); err == nil && n != 0 {
		return Code(n), nil
	}
	return None, fmt.Errorf("unknown key %q", s)
}

// Names converts codes to their names, preserving order.
func Names(codes []Code) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = c.String()
	}
	return out
}
