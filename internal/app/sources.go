package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/matheus3301/keyview/internal/config"
	"github.com/matheus3301/keyview/internal/input"
	"github.com/matheus3301/keyview/internal/status"
	"go.uber.org/zap"
)

// startSources starts the input sources selected by mode and moves the
// status machine accordingly. terminal may be nil (headless). It returns
// the sources that were started.
func startSources(ctx context.Context, mode string, evdev, terminal input.Source, machine *status.Machine, logger *zap.Logger) ([]input.Source, error) {
	startTerminal := func() ([]input.Source, error) {
		if terminal == nil {
			_ = machine.Transition(status.Error)
			return nil, errors.New("terminal input is not available without a screen")
		}
		if err := terminal.Start(ctx); err != nil {
			_ = machine.Transition(status.Error)
			return nil, fmt.Errorf("start terminal input: %w", err)
		}
		_ = machine.Transition(status.TerminalOnly)
		return []input.Source{terminal}, nil
	}

	switch mode {
	case config.SourceTerminal:
		return startTerminal()

	case config.SourceEvdev:
		if err := evdev.Start(ctx); err != nil {
			_ = machine.Transition(status.Error)
			return nil, fmt.Errorf("start evdev input: %w", err)
		}
		_ = machine.Transition(status.Listening)
		return []input.Source{evdev}, nil

	case config.SourceAuto:
		err := evdev.Start(ctx)
		if err == nil {
			_ = machine.Transition(status.Listening)
			return []input.Source{evdev}, nil
		}
		if terminal == nil {
			_ = machine.Transition(status.Error)
			return nil, fmt.Errorf("start evdev input: %w", err)
		}
		logger.Warn("evdev unavailable, falling back to terminal input", zap.Error(err))
		return startTerminal()
	}
	return nil, fmt.Errorf("unknown input source %q", mode)
}

// stopSources stops sources in reverse start order.
func stopSources(sources []input.Source, logger *zap.Logger) {
	for i := len(sources) - 1; i >= 0; i-- {
		if err := sources[i].Stop(); err != nil {
			logger.Warn("error stopping input source",
				zap.String("source", sources[i].Name()),
				zap.Error(err),
			)
		}
	}
}
