package views

import (
	"math"

	intsync "github.com/matheus3301/keyview/internal/sync"
	"github.com/matheus3301/keyview/internal/tui/ui"
	"github.com/rivo/tview"
)

// Keyboard is the tview scene the key bindings are built into: a column of
// row flexes, each holding fixed-width key boxes and spacers, centered in
// both directions.
type Keyboard struct {
	*tview.Flex
	theme     *ui.Theme
	unitWidth int
	keyHeight int
	rows      []*keyRow
	finished  bool
}

// NewKeyboard creates an empty keyboard scene.
func NewKeyboard(theme *ui.Theme, unitWidth, keyHeight int) *Keyboard {
	f := tview.NewFlex().SetDirection(tview.FlexRow)
	f.SetBackgroundColor(theme.BgColor)
	f.AddItem(pad(theme), 0, 1, false)
	return &Keyboard{
		Flex:      f,
		theme:     theme,
		unitWidth: unitWidth,
		keyHeight: keyHeight,
	}
}

// AddRow implements sync.Scene.
func (k *Keyboard) AddRow() intsync.Row {
	r := &keyRow{
		Flex:     tview.NewFlex().SetDirection(tview.FlexColumn),
		keyboard: k,
	}
	r.SetBackgroundColor(k.theme.BgColor)
	r.AddItem(pad(k.theme), 0, 1, false)
	k.rows = append(k.rows, r)
	k.AddItem(r, k.keyHeight, 0, false)
	return r
}

// Finish closes the centering pads. Call it once after binding.
func (k *Keyboard) Finish() *Keyboard {
	if k.finished {
		return k
	}
	k.finished = true
	for _, r := range k.rows {
		r.AddItem(pad(k.theme), 0, 1, false)
	}
	k.AddItem(pad(k.theme), 0, 1, false)
	return k
}

// Rows returns the number of rows added so far.
func (k *Keyboard) Rows() int { return len(k.rows) }

// Cells converts a width in key units to terminal columns.
func (k *Keyboard) Cells(width float64) int {
	return max(1, int(math.Round(width*float64(k.unitWidth))))
}

type keyRow struct {
	*tview.Flex
	keyboard *Keyboard
	keys     []*KeyBox
}

func (r *keyRow) AddSpacer(width float64) {
	r.AddItem(pad(r.keyboard.theme), r.keyboard.Cells(width), 0, false)
}

func (r *keyRow) AddKey(label string, width float64) intsync.Element {
	kb := NewKeyBox(label, r.keyboard.theme)
	r.keys = append(r.keys, kb)
	r.AddItem(kb, r.keyboard.Cells(width), 0, false)
	return kb
}

func pad(theme *ui.Theme) *tview.Box {
	return tview.NewBox().SetBackgroundColor(theme.BgColor)
}
