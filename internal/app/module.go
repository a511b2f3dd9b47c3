package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/matheus3301/keyview/internal/bus"
	"github.com/matheus3301/keyview/internal/config"
	"github.com/matheus3301/keyview/internal/headless"
	"github.com/matheus3301/keyview/internal/input"
	"github.com/matheus3301/keyview/internal/layout"
	"github.com/matheus3301/keyview/internal/logging"
	"github.com/matheus3301/keyview/internal/paths"
	"github.com/matheus3301/keyview/internal/status"
	intsync "github.com/matheus3301/keyview/internal/sync"
	"github.com/matheus3301/keyview/internal/tui"
	"github.com/matheus3301/keyview/internal/tui/ui"
	"github.com/matheus3301/keyview/internal/tui/views"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Params holds the resolved configuration passed to the fx module.
type Params struct {
	Config   *config.Config
	Headless bool // no screen: evdev only, changes logged to stderr
	LogLevel zapcore.Level
}

// Module returns the fx module for the viewer, composing all providers and
// lifecycle hooks.
func Module(p Params) fx.Option {
	common := fx.Options(
		fx.Supply(p),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			fl := &fxevent.ZapLogger{Logger: logger.Named("fx")}
			fl.UseLogLevel(zapcore.DebugLevel)
			return fl
		}),
		fx.Provide(
			provideLogger,
			provideBus,
			provideStateMachine,
			provideTracker,
			provideLayout,
			provideEvdevSource,
			provideLoop,
			provideReporter,
		),
	)

	if p.Headless {
		return fx.Module("headless",
			common,
			fx.Provide(
				provideHeadlessScene,
				provideRunner,
			),
			fx.Invoke(registerHeadless),
		)
	}
	return fx.Module("viewer",
		common,
		fx.Provide(
			provideTheme,
			provideKeyboard,
			provideKeyboardScene,
			provideTerminalSource,
			provideUI,
		),
		fx.Invoke(registerViewer),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	path := p.Config.LogPath
	if path == "" {
		path = paths.LogPath()
	}
	return logging.New(path, uuid.NewString(), p.Headless, p.LogLevel)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideTracker() *input.Tracker {
	return input.NewTracker()
}

func provideLayout(p Params, logger *zap.Logger) ([][]layout.Descriptor, error) {
	rows, err := layout.Resolve(p.Config.LayoutFile)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	if err := layout.Validate(rows); err != nil {
		return nil, err
	}
	keys, spacers := layout.Count(rows)
	logger.Info("layout loaded",
		zap.String("file", p.Config.LayoutFile),
		zap.Int("rows", len(rows)),
		zap.Int("keys", keys),
		zap.Int("spacers", spacers),
	)
	return rows, nil
}

func provideEvdevSource(p Params, tracker *input.Tracker, m *status.Machine, logger *zap.Logger) *input.EvdevSource {
	return input.NewEvdevSource(tracker, m, logger.Named("evdev"), p.Config.Devices)
}

func provideLoop(rows [][]layout.Descriptor, scene intsync.Scene, b *bus.Bus, logger *zap.Logger) *intsync.Loop {
	return intsync.NewLoop(intsync.Bind(rows, scene), b, logger)
}

func provideReporter(b *bus.Bus, logger *zap.Logger) *intsync.Reporter {
	return intsync.NewReporter(b, logger.Named("keys"))
}

func provideHeadlessScene() intsync.Scene {
	return headless.NewScene()
}

func provideRunner(p Params, loop *intsync.Loop, tracker *input.Tracker, logger *zap.Logger) *headless.Runner {
	return headless.NewRunner(loop, tracker, p.Config.FrameInterval(), logger)
}

func provideTheme(p Params) (*ui.Theme, error) {
	return ui.ThemeFromConfig(p.Config)
}

func provideKeyboard(p Params, theme *ui.Theme) *views.Keyboard {
	return views.NewKeyboard(theme, p.Config.UnitWidth, p.Config.KeyHeight)
}

func provideKeyboardScene(k *views.Keyboard) intsync.Scene {
	return k
}

func provideTerminalSource(p Params, tracker *input.Tracker) *input.TerminalSource {
	return input.NewTerminalSource(tracker, p.Config.TapHold())
}

func provideUI(p Params, theme *ui.Theme, k *views.Keyboard, loop *intsync.Loop, tracker *input.Tracker, terminal *input.TerminalSource, m *status.Machine, b *bus.Bus, logger *zap.Logger) *tui.App {
	return tui.NewApp(tui.Deps{
		Theme:    theme,
		Keyboard: k,
		Loop:     loop,
		Tracker:  tracker,
		Terminal: terminal,
		Machine:  m,
		Bus:      b,
		Logger:   logger.Named("tui"),
		Source:   p.Config.Source,
		Interval: p.Config.FrameInterval(),
	})
}

func registerViewer(lc fx.Lifecycle, sd fx.Shutdowner, p Params, viewer *tui.App, evdev *input.EvdevSource, terminal *input.TerminalSource, reporter *intsync.Reporter, machine *status.Machine, logger *zap.Logger) {
	runCtx, cancel := context.WithCancel(context.Background())
	var sources []input.Source

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			reporter.Start(runCtx)

			var err error
			sources, err = startSources(runCtx, p.Config.Source, evdev, terminal, machine, logger)
			if err != nil {
				reporter.Stop()
				cancel()
				return err
			}

			go func() {
				code := 0
				if err := viewer.Run(); err != nil {
					logger.Error("viewer exited with error", zap.Error(err))
					code = 1
				}
				_ = sd.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			viewer.Stop()
			stopSources(sources, logger)
			cancel()
			reporter.Stop()
			_ = machine.Transition(status.Stopped)
			logger.Info("viewer stopped")
			_ = logger.Sync()
			return nil
		},
	})
}

func registerHeadless(lc fx.Lifecycle, sd fx.Shutdowner, p Params, runner *headless.Runner, evdev *input.EvdevSource, reporter *intsync.Reporter, machine *status.Machine, b *bus.Bus, logger *zap.Logger) {
	runCtx, cancel := context.WithCancel(context.Background())
	var sources []input.Source

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			reporter.Start(runCtx)
			statusCh, unsub := b.Subscribe("input.", 16)

			var err error
			sources, err = startSources(runCtx, p.Config.Source, evdev, nil, machine, logger)
			if err != nil {
				unsub()
				reporter.Stop()
				cancel()
				return err
			}

			go func() {
				defer unsub()
				shutdownOnError(runCtx, statusCh, sd, logger)
			}()
			runner.Start(runCtx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			runner.Stop()
			stopSources(sources, logger)
			cancel()
			reporter.Stop()
			_ = machine.Transition(status.Stopped)
			logger.Info("headless stopped")
			_ = logger.Sync()
			return nil
		},
	})
}

// shutdownOnError stops the app once every keyboard is gone.
func shutdownOnError(ctx context.Context, ch <-chan bus.Event, sd fx.Shutdowner, logger *zap.Logger) {
	for {
		select {
		case evt := <-ch:
			change, ok := evt.Payload.(status.StatusChange)
			if !ok || change.To != status.Error {
				continue
			}
			logger.Error("no keyboards left, shutting down")
			_ = sd.Shutdown(fx.ExitCode(1))
			return
		case <-ctx.Done():
			return
		}
	}
}
