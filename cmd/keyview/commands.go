package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matheus3301/keyview/internal/app"
	"github.com/matheus3301/keyview/internal/config"
	"github.com/matheus3301/keyview/internal/input"
	"github.com/matheus3301/keyview/internal/layout"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var stdout io.Writer = os.Stdout

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Config file." type:"path" default:"${config_path}" env:"KEYVIEW_CONFIG"`
	LogLevel string `help:"Log level." enum:"debug,info,warn,error" default:"info"`
}

// CLI is the command tree.
type CLI struct {
	Globals

	Run      RunCmd      `cmd:"" default:"withargs" help:"Open the keyboard viewer."`
	Headless HeadlessCmd `cmd:"" help:"Track keyboards without a screen and log every change."`
	Layout   LayoutCmd   `cmd:"" help:"Validate and print a layout."`
	Devices  DevicesCmd  `cmd:"" help:"List the keyboards that would be read."`
	Cfg      ConfigCmd   `cmd:"" name:"config" help:"Manage the config file."`
}

func (g *Globals) load() (*config.Config, error) {
	return config.Resolve(g.Config)
}

func (g *Globals) level() (zapcore.Level, error) {
	return zapcore.ParseLevel(g.LogLevel)
}

// Overrides are the per-run flags that win over the config file.
type Overrides struct {
	FPS     int      `help:"Frames per second."`
	Layout  string   `help:"Layout file (TOML)." type:"path"`
	Devices []string `name:"device" help:"Only read devices whose name contains this (repeatable)."`
}

func (o *Overrides) apply(cfg *config.Config) {
	if o.FPS != 0 {
		cfg.FPS = o.FPS
	}
	if o.Layout != "" {
		cfg.LayoutFile = o.Layout
	}
	if len(o.Devices) > 0 {
		cfg.Devices = o.Devices
	}
}

// RunCmd opens the viewer.
type RunCmd struct {
	Overrides `embed:""`
	Source    string `help:"Input source: auto, evdev or terminal."`
}

func (c *RunCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if c.Source != "" {
		cfg.Source = c.Source
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use 'keyview headless' instead")
	}
	level, err := g.level()
	if err != nil {
		return err
	}
	return runApp(app.Params{Config: cfg, LogLevel: level})
}

// HeadlessCmd tracks evdev keyboards and logs changes to stderr.
type HeadlessCmd struct {
	Overrides `embed:""`
}

func (c *HeadlessCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	cfg.Source = config.SourceEvdev
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	level, err := g.level()
	if err != nil {
		return err
	}
	return runApp(app.Params{Config: cfg, Headless: true, LogLevel: level})
}

func runApp(p app.Params) error {
	fxApp := fx.New(app.Module(p))
	if err := fxApp.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), fxApp.StartTimeout())
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return err
	}

	sig := <-fxApp.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), fxApp.StopTimeout())
	defer cancel()
	if err := fxApp.Stop(stopCtx); err != nil {
		return err
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("exited with code %d", sig.ExitCode)
	}
	return nil
}

// LayoutCmd validates a layout and prints it row by row.
type LayoutCmd struct {
	File string `help:"Layout file (TOML). Defaults to the configured layout or the built-in one." type:"path"`
}

func (c *LayoutCmd) Run(g *Globals) error {
	file := c.File
	if file == "" {
		cfg, err := g.load()
		if err != nil {
			return err
		}
		file = cfg.LayoutFile
	}

	rows, err := layout.Resolve(file)
	if err != nil {
		return err
	}
	if err := layout.Validate(rows); err != nil {
		return err
	}

	keys, spacers := layout.Count(rows)
	_, _ = fmt.Fprint(stdout, layout.Format(rows))
	_, _ = fmt.Fprintf(stdout, "%d rows, %d keys, %d spacers\n", len(rows), keys, spacers)
	return nil
}

// DevicesCmd lists readable keyboards.
type DevicesCmd struct {
	Devices []string `name:"device" help:"Name filter (repeatable). Defaults to the configured filters."`
}

func (c *DevicesCmd) Run(g *Globals) error {
	filters := c.Devices
	if len(filters) == 0 {
		cfg, err := g.load()
		if err != nil {
			return err
		}
		filters = cfg.Devices
	}

	devices, err := input.ListKeyboards(filters, zap.NewNop())
	if err != nil {
		return err
	}
	for _, d := range devices {
		_, _ = fmt.Fprintf(stdout, "%s\t%s\n", d.Path, d.Name)
	}
	return nil
}

// ConfigCmd groups config subcommands.
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write the default config file."`
}

// ConfigInitCmd writes the default config.
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing file."`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	if !c.Force {
		if _, err := os.Stat(g.Config); err == nil {
			return fmt.Errorf("%s exists; use --force to overwrite", g.Config)
		}
	}
	if err := config.Save(g.Config, config.Default()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "wrote %s\n", g.Config)
	return nil
}
