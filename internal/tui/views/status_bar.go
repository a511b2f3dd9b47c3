package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/keyview/internal/status"
	"github.com/matheus3301/keyview/internal/tui/ui"
	"github.com/rivo/tview"
)

// StatusBar displays the input source state and the held keys.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	source  string
	state   status.State
	pressed []string
	hints   []string
	flash   string
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.StatusBgColor)
	tv.SetTextColor(theme.StatusFgColor)

	sb := &StatusBar{TextView: tv, theme: theme, state: status.Starting}
	sb.render()
	return sb
}

// SetSource updates the input source name.
func (sb *StatusBar) SetSource(name string) {
	sb.source = name
	sb.render()
}

// SetState updates the input source state.
func (sb *StatusBar) SetState(s status.State) {
	sb.state = s
	sb.render()
}

// SetPressed updates the held key list.
func (sb *StatusBar) SetPressed(names []string) {
	sb.pressed = append(sb.pressed[:0], names...)
	sb.render()
}

// SetHints sets the control key hints shown on the right.
func (sb *StatusBar) SetHints(hints []string) {
	sb.hints = hints
	sb.render()
}

// SetFlash sets a temporary message.
func (sb *StatusBar) SetFlash(msg string) {
	sb.flash = msg
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	stateColor := ui.ColorName(sb.theme.StatusFgColor)
	switch sb.state {
	case status.Degraded, status.TerminalOnly:
		stateColor = ui.ColorName(sb.theme.WarnColor)
	case status.Error:
		stateColor = ui.ColorName(sb.theme.ErrColor)
	}

	held := "-"
	if len(sb.pressed) > 0 {
		held = strings.Join(sb.pressed, " ")
	}

	line := fmt.Sprintf(" [::b]keyview[-:-:-] | %s [%s]%s[-] | held: [%s]%s[-]",
		sb.source, stateColor, sb.state, ui.ColorName(sb.theme.HeldKeyColor), tview.Escape(held))
	if len(sb.hints) > 0 {
		line += " | " + strings.Join(sb.hints, " ")
	}
	if sb.flash != "" {
		line += fmt.Sprintf(" | [%s]%s[-]", ui.ColorName(sb.theme.WarnColor), tview.Escape(sb.flash))
	}

	_, _ = fmt.Fprint(sb, line)
}
