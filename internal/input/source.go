package input

import (
	"context"
	"errors"
)

// ErrNoDevices is returned when no readable keyboard device was found.
var ErrNoDevices = errors.New("no readable keyboard devices")

// Source feeds a Tracker from some input backend.
type Source interface {
	Name() string
	// Start begins feeding the tracker. It does not block.
	Start(ctx context.Context) error
	// Stop terminates the source and releases its keys.
	Stop() error
}
