package layout

import kc "github.com/matheus3301/keyview/internal/keycode"

// fnGap separates the function-key clusters.
const fnGap = 1.75 / 3

func key(code kc.Code, label string) Descriptor {
	return Descriptor{Code: code, Label: label, Width: 1}
}

func wide(code kc.Code, label string, width float64) Descriptor {
	return Descriptor{Code: code, Label: label, Width: width}
}

// legend is a key with the shifted symbol above the base one.
func legend(code kc.Code, shifted, base string) Descriptor {
	return Descriptor{Code: code, Label: shifted + "\n" + base, Width: 1}
}

func gap(width float64) Descriptor {
	return Descriptor{Width: width}
}

// Build returns the full-size keyboard: function row, number row, QWERTY
// row, home row, bottom letter row and modifier row. Each call returns a
// fresh table.
func Build() [][]Descriptor {
	return [][]Descriptor{
		{
			key(kc.Esc, "ESC"),
			gap(fnGap),
			key(kc.F1, "F1"), key(kc.F2, "F2"), key(kc.F3, "F3"), key(kc.F4, "F4"),
			gap(fnGap),
			key(kc.F5, "F5"), key(kc.F6, "F6"), key(kc.F7, "F7"), key(kc.F8, "F8"),
			gap(fnGap),
			key(kc.F9, "F9"), key(kc.F10, "F10"), key(kc.F11, "F11"), key(kc.F12, "F12"),
		},
		{
			legend(kc.Grave, "~", "`"),
			legend(kc.Key1, "!", "1"),
			legend(kc.Key2, "@", "2"),
			legend(kc.Key3, "#", "3"),
			legend(kc.Key4, "$", "4"),
			legend(kc.Key5, "%", "5"),
			legend(kc.Key6, "^", "6"),
			legend(kc.Key7, "&", "7"),
			legend(kc.Key8, "*", "8"),
			legend(kc.Key9, "(", "9"),
			legend(kc.Key0, ")", "0"),
			legend(kc.Minus, "_", "-"),
			legend(kc.Equal, "+", "="),
			wide(kc.Backspace, "|<-", 1.75),
		},
		{
			wide(kc.Tab, "Tab", 1.5),
			key(kc.Q, "Q"), key(kc.W, "W"), key(kc.E, "E"), key(kc.R, "R"), key(kc.T, "T"),
			key(kc.Y, "Y"), key(kc.U, "U"), key(kc.I, "I"), key(kc.O, "O"), key(kc.P, "P"),
			legend(kc.LeftBrace, "{", "["),
			legend(kc.RightBrace, "}", "]"),
			Descriptor{Code: kc.Backslash, Label: "|\n\\", Width: 1.25},
		},
		{
			wide(kc.CapsLock, "Caps\nLock", 1.75),
			key(kc.A, "A"), key(kc.S, "S"), key(kc.D, "D"), key(kc.F, "F"), key(kc.G, "G"),
			key(kc.H, "H"), key(kc.J, "J"), key(kc.K, "K"), key(kc.L, "L"),
			key(kc.Semicolon, ";"),
			legend(kc.Apostrophe, `"`, "'"),
			wide(kc.Enter, "Enter", 2),
		},
		{
			wide(kc.LeftShift, "Left\nShift", 2.25),
			key(kc.Z, "Z"), key(kc.X, "X"), key(kc.C, "C"), key(kc.V, "V"), key(kc.B, "B"),
			key(kc.N, "N"), key(kc.M, "M"),
			key(kc.Comma, ","),
			key(kc.Dot, "."),
			legend(kc.Slash, "?", "/"),
			wide(kc.RightShift, "Right\nShift", 2.5),
		},
		{
			wide(kc.LeftCtrl, "Ctrl", 1.5),
			wide(kc.LeftMeta, "Super", 1.25),
			wide(kc.LeftAlt, "Alt", 1.25),
			wide(kc.Space, "Space", 7),
			wide(kc.RightAlt, "Alt", 1.25),
			wide(kc.RightMeta, "Super", 1.25),
			wide(kc.RightCtrl, "Ctrl", 1.25),
		},
	}
}
