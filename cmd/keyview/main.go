package main

import (
	"github.com/alecthomas/kong"
	"github.com/matheus3301/keyview/internal/paths"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("keyview"),
		kong.Description("Show which keyboard keys are held, live, in the terminal."),
		kong.UsageOnError(),
		kong.Vars{"config_path": paths.ConfigPath()},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
