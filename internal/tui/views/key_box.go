package views

import (
	"github.com/gdamore/tcell/v2"
	intsync "github.com/matheus3301/keyview/internal/sync"
	"github.com/matheus3301/keyview/internal/tui/ui"
	"github.com/rivo/tview"
)

// KeyBox is one bordered, labelled key. Its border shows the highlight.
type KeyBox struct {
	*tview.TextView
	theme *ui.Theme
	state intsync.State
}

// NewKeyBox creates a key box in the released state.
func NewKeyBox(label string, theme *ui.Theme) *KeyBox {
	tv := tview.NewTextView().
		SetText(cleanLabel(label)).
		SetTextAlign(tview.AlignCenter).
		SetWrap(false)
	tv.SetBorder(true)
	tv.SetBackgroundColor(theme.BgColor)

	kb := &KeyBox{TextView: tv, theme: theme}
	kb.apply(intsync.Released)
	return kb
}

// SetState implements sync.Element.
func (kb *KeyBox) SetState(s intsync.State) {
	kb.apply(s)
}

// State returns the last applied highlight state.
func (kb *KeyBox) State() intsync.State { return kb.state }

func (kb *KeyBox) apply(s intsync.State) {
	kb.state = s
	color := kb.theme.KeyInactiveColor
	attrs := tcell.AttrNone
	if s == intsync.Pressed {
		color = kb.theme.KeyActiveColor
		attrs = tcell.AttrBold
	}
	kb.SetBorderColor(color)
	kb.SetBorderAttributes(attrs)
	kb.SetTextColor(color)
}
