//go:build linux

package input

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/holoplot/go-evdev"
	"github.com/matheus3301/keyview/internal/keycode"
	"github.com/matheus3301/keyview/internal/status"
	"go.uber.org/zap"
)

// EvdevSource reads physical key state from /dev/input keyboards.
type EvdevSource struct {
	tracker *Tracker
	machine *status.Machine
	logger  *zap.Logger
	filters []string

	mu       sync.Mutex
	devices  []*evdev.InputDevice
	wg       sync.WaitGroup
	live     atomic.Int32
	stopping atomic.Bool
}

// NewEvdevSource creates an evdev source. filters, when non-empty, restrict
// the devices to those whose name contains one of them (case-insensitive).
func NewEvdevSource(tracker *Tracker, machine *status.Machine, logger *zap.Logger, filters []string) *EvdevSource {
	return &EvdevSource{
		tracker: tracker,
		machine: machine,
		logger:  logger,
		filters: filters,
	}
}

func (s *EvdevSource) Name() string { return "evdev" }

// Start opens every matching keyboard and starts one reader per device.
func (s *EvdevSource) Start(ctx context.Context) error {
	devices, err := openKeyboards(s.filters, s.logger)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.devices = devices
	s.mu.Unlock()
	s.live.Store(int32(len(devices)))

	for _, dev := range devices {
		s.seed(dev)
		s.wg.Add(1)
		go s.listen(dev)
	}

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()
	return nil
}

// seed copies keys already held when the device was opened.
func (s *EvdevSource) seed(dev *evdev.InputDevice) {
	state, err := dev.State(evdev.EV_KEY)
	if err != nil {
		s.logger.Debug("read initial key state", zap.String("path", dev.Path()), zap.Error(err))
		return
	}
	for code, down := range state {
		if down {
			s.tracker.Press(dev.Path(), keycode.Code(code))
		}
	}
}

func (s *EvdevSource) listen(dev *evdev.InputDevice) {
	defer s.wg.Done()
	path := dev.Path()

	for {
		evt, err := dev.ReadOne()
		if err != nil {
			s.tracker.ReleaseAll(path)
			if s.stopping.Load() {
				return
			}
			left := s.live.Add(-1)
			s.logger.Warn("keyboard device lost",
				zap.String("path", path),
				zap.Int32("remaining", left),
				zap.Error(err),
			)
			if s.machine != nil {
				if left > 0 {
					_ = s.machine.Transition(status.Degraded)
				} else {
					_ = s.machine.Transition(status.Error)
				}
			}
			return
		}
		if evt.Type != evdev.EV_KEY {
			continue
		}

		code := keycode.Code(evt.Code)
		switch evt.Value {
		case 0:
			s.tracker.Release(path, code)
		case 1, 2:
			s.tracker.Press(path, code)
		}
	}
}

// Stop closes all devices and waits for the readers to exit.
func (s *EvdevSource) Stop() error {
	if s.stopping.Swap(true) {
		return nil
	}

	s.mu.Lock()
	devices := s.devices
	s.devices = nil
	s.mu.Unlock()

	var errs []error
	for _, dev := range devices {
		if err := dev.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", dev.Path(), err))
		}
	}
	s.wg.Wait()
	for _, dev := range devices {
		s.tracker.ReleaseAll(dev.Path())
	}
	return errors.Join(errs...)
}

// Device describes one keyboard the evdev source would read.
type Device struct {
	Path string
	Name string
}

// ListKeyboards returns the keyboards matching filters without keeping
// them open.
func ListKeyboards(filters []string, logger *zap.Logger) ([]Device, error) {
	devices, err := openKeyboards(filters, logger)
	if err != nil {
		return nil, err
	}
	out := make([]Device, 0, len(devices))
	for _, dev := range devices {
		name, _ := dev.Name()
		out = append(out, Device{Path: dev.Path(), Name: name})
		_ = dev.Close()
	}
	return out, nil
}

func openKeyboards(filters []string, logger *zap.Logger) ([]*evdev.InputDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var (
		devices []*evdev.InputDevice
		denied  error
	)
	for _, p := range paths {
		if !matchesFilter(p.Name, filters) {
			continue
		}
		dev, err := evdev.Open(p.Path)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				denied = err
			}
			logger.Debug("skip input device", zap.String("path", p.Path), zap.Error(err))
			continue
		}
		if !isKeyboard(dev) {
			_ = dev.Close()
			continue
		}
		logger.Info("keyboard device opened", zap.String("path", p.Path), zap.String("name", p.Name))
		devices = append(devices, dev)
	}

	if len(devices) == 0 {
		if denied != nil {
			return nil, fmt.Errorf("%w: %v (add your user to the 'input' group)", ErrNoDevices, denied)
		}
		return nil, ErrNoDevices
	}
	return devices, nil
}

// isKeyboard keeps devices that report letter keys, which leaves out mice,
// lid switches and power buttons.
func isKeyboard(dev *evdev.InputDevice) bool {
	if !slices.Contains(dev.CapableTypes(), evdev.EV_KEY) {
		return false
	}
	return slices.Contains(dev.CapableEvents(evdev.EV_KEY), evdev.KEY_A)
}

func matchesFilter(name string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	name = strings.ToLower(name)
	for _, f := range filters {
		if strings.Contains(name, strings.ToLower(f)) {
			return true
		}
	}
	return false
}
