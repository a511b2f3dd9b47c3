package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/matheus3301/keyview/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("keyview"),
		kong.Vars{"config_path": filepath.Join(t.TempDir(), "config.toml")},
		kong.Bind(&cli.Globals),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() { stdout = os.Stdout })

	err = ctx.Run()
	return out.String(), err
}

func TestLayoutCommandBuiltin(t *testing.T) {
	out, err := run(t, "layout")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "·")
	assert.Equal(t, "6 rows, 73 keys, 3 spacers", lines[6])
}

func TestLayoutCommandRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[row]]
keys = [{ code = "A" }, { code = "A" }]
`), 0600))

	_, err := run(t, "layout", "--file", path)
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyview", "config.toml")

	out, err := run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = run(t, "--config", path, "config", "init")
	assert.Error(t, err, "refuses to overwrite")

	_, err = run(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestOverridesApply(t *testing.T) {
	cfg := config.Default()
	o := Overrides{FPS: 30, Layout: "/tmp/l.toml", Devices: []string{"AT"}}
	o.apply(cfg)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, "/tmp/l.toml", cfg.LayoutFile)
	assert.Equal(t, []string{"AT"}, cfg.Devices)

	cfg = config.Default()
	(&Overrides{}).apply(cfg)
	assert.Equal(t, config.Default(), cfg)
}
