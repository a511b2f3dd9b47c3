//go:build !linux

package input

import (
	"context"
	"fmt"

	"github.com/matheus3301/keyview/internal/status"
	"go.uber.org/zap"
)

// EvdevSource is unavailable outside Linux; Start always fails.
type EvdevSource struct{}

func NewEvdevSource(_ *Tracker, _ *status.Machine, _ *zap.Logger, _ []string) *EvdevSource {
	return &EvdevSource{}
}

func (s *EvdevSource) Name() string { return "evdev" }

func (s *EvdevSource) Start(context.Context) error {
	return fmt.Errorf("%w: evdev is only available on linux", ErrNoDevices)
}

func (s *EvdevSource) Stop() error { return nil }

// Device describes one keyboard the evdev source would read.
type Device struct {
	Path string
	Name string
}

// ListKeyboards always fails outside Linux.
func ListKeyboards(_ []string, _ *zap.Logger) ([]Device, error) {
	return nil, fmt.Errorf("%w: evdev is only available on linux", ErrNoDevices)
}
