package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/keyview/internal/bus"
	"github.com/matheus3301/keyview/internal/input"
	"github.com/matheus3301/keyview/internal/keycode"
	"github.com/matheus3301/keyview/internal/status"
	intsync "github.com/matheus3301/keyview/internal/sync"
	"github.com/matheus3301/keyview/internal/tui/keys"
	"github.com/matheus3301/keyview/internal/tui/model"
	"github.com/matheus3301/keyview/internal/tui/ui"
	"github.com/matheus3301/keyview/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const flashDuration = 3 * time.Second

// Deps are the collaborators of the viewer.
type Deps struct {
	Theme    *ui.Theme
	Keyboard *views.Keyboard // already bound by Loop
	Loop     *intsync.Loop
	Tracker  *input.Tracker
	Terminal *input.TerminalSource
	Machine  *status.Machine
	Bus      *bus.Bus
	Logger   *zap.Logger
	Source   string
	Interval time.Duration
}

// App is the keyboard viewer: the bound keyboard scene over a status bar,
// redrawn by a frame ticker.
type App struct {
	app       *tview.Application
	keyboard  *views.Keyboard
	statusBar *views.StatusBar
	registry  *keys.Registry
	loop      *intsync.Loop
	tracker   *input.Tracker
	terminal  *input.TerminalSource
	machine   *status.Machine
	bus       *bus.Bus
	logger    *zap.Logger
	interval  time.Duration

	flash      model.Flash
	shownFlash string
	buf        []keycode.Code

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the viewer application.
func NewApp(d Deps) *App {
	ctx, cancel := context.WithCancel(context.Background())
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		app:       tview.NewApplication(),
		keyboard:  d.Keyboard.Finish(),
		statusBar: views.NewStatusBar(d.Theme),
		registry:  keys.NewRegistry(),
		loop:      d.Loop,
		tracker:   d.Tracker,
		terminal:  d.Terminal,
		machine:   d.Machine,
		bus:       d.Bus,
		logger:    logger,
		interval:  d.Interval,
		buf:       make([]keycode.Code, 0, 16),
		ctx:       ctx,
		cancel:    cancel,
	}

	a.statusBar.SetSource(d.Source)
	if a.machine != nil {
		a.statusBar.SetState(a.machine.Current())
	}
	a.setupBindings()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.Add("quit", &keys.Action{
		Key:         tcell.KeyCtrlQ,
		Description: "^Q:quit", Visible: true,
		Handler: func() { a.Stop() },
	})
	a.registry.Add("interrupt", &keys.Action{
		Key:     tcell.KeyCtrlC,
		Handler: func() { a.Stop() },
	})
	a.registry.Add("reset", &keys.Action{
		Key:         tcell.KeyCtrlR,
		Description: "^R:reset", Visible: true,
		Handler: func() { a.reset() },
	})
	a.registry.Add("redraw", &keys.Action{
		Key:         tcell.KeyCtrlL,
		Description: "^L:redraw", Visible: true,
		Handler: func() { a.app.Sync() },
	})
	a.statusBar.SetHints(a.registry.Hints())
}

func (a *App) setupLayout() {
	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.keyboard, 0, 1, false).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(root, true)
	a.app.SetInputCapture(a.capture)
}

// capture handles every key event. Nothing on screen takes focus, so events
// never propagate past it.
func (a *App) capture(ev *tcell.EventKey) *tcell.EventKey {
	if a.registry.HandleEvent(ev) {
		return nil
	}
	if a.terminal != nil {
		a.terminal.Feed(ev)
	}
	return nil
}

// reset drops pending terminal taps and forces the next frame through.
// Runs on the event loop.
func (a *App) reset() {
	a.tracker.ClearTaps()
	a.loop.Reset()
	a.flash.Set("reset", time.Now().Add(flashDuration))
}

// frame applies one snapshot to the scene. It runs on the event loop and
// reports whether anything on screen changed.
func (a *App) frame(now time.Time) bool {
	a.buf = a.tracker.AppendPressed(a.buf[:0], now)
	dirty := a.loop.Tick(a.buf)
	if dirty {
		a.statusBar.SetPressed(keycode.Names(a.buf))
	}
	if msg := a.flash.Message(now); msg != a.shownFlash {
		a.shownFlash = msg
		a.statusBar.SetFlash(msg)
		dirty = true
	}
	return dirty
}

func (a *App) startFrameLoop() {
	ticker := time.NewTicker(a.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.app.QueueUpdate(func() {
					if a.frame(time.Now()) {
						a.app.ForceDraw()
					}
				})
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

func (a *App) startStatusWatch() {
	if a.bus == nil {
		return
	}
	ch, unsub := a.bus.Subscribe("input.", 16)
	go func() {
		defer unsub()
		for {
			select {
			case evt := <-ch:
				change, ok := evt.Payload.(status.StatusChange)
				if !ok {
					continue
				}
				a.app.QueueUpdateDraw(func() {
					a.statusChanged(change)
				})
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

func (a *App) statusChanged(change status.StatusChange) {
	a.statusBar.SetState(change.To)
	switch change.To {
	case status.Degraded:
		a.flash.Set("keyboard lost", time.Now().Add(flashDuration))
	case status.Error:
		a.flash.Set("no keyboards left", time.Now().Add(flashDuration))
	}
}

// Run starts the viewer and blocks until it exits.
func (a *App) Run() error {
	defer a.cancel()
	a.startStatusWatch()
	a.startFrameLoop()
	a.logger.Info("viewer started", zap.Int("keys", a.loop.Board().Len()))
	return a.app.Run()
}

// Stop gracefully shuts down the viewer.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
