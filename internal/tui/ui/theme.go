package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/keyview/internal/config"
)

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor          tcell.Color
	FgColor          tcell.Color
	KeyActiveColor   tcell.Color
	KeyInactiveColor tcell.Color
	StatusBgColor    tcell.Color
	StatusFgColor    tcell.Color
	TitleColor       tcell.Color
	HeldKeyColor     tcell.Color
	WarnColor        tcell.Color
	ErrColor         tcell.Color
}

// DefaultTheme returns a dark theme with green/white keys.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:          tcell.ColorBlack,
		FgColor:          tcell.ColorWhite,
		KeyActiveColor:   tcell.ColorGreen,
		KeyInactiveColor: tcell.ColorWhite,
		StatusBgColor:    tcell.ColorDarkSlateGray,
		StatusFgColor:    tcell.ColorWhite,
		TitleColor:       tcell.ColorFuchsia,
		HeldKeyColor:     tcell.ColorLightGreen,
		WarnColor:        tcell.ColorOrange,
		ErrColor:         tcell.ColorOrangeRed,
	}
}

// ThemeFromConfig returns the default theme with the configured key colors.
func ThemeFromConfig(cfg *config.Config) (*Theme, error) {
	t := DefaultTheme()
	active, err := config.ParseColor(cfg.ActiveColor)
	if err != nil {
		return nil, fmt.Errorf("active color: %w", err)
	}
	inactive, err := config.ParseColor(cfg.InactiveColor)
	if err != nil {
		return nil, fmt.Errorf("inactive color: %w", err)
	}
	t.KeyActiveColor = active
	t.KeyInactiveColor = inactive
	return t, nil
}

// ColorName returns a tview color tag name for c.
func ColorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
