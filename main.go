package main

import (
	"fmt"
	"os"

	"csema/internal/compiler"

	"github.com/urfave/cli/v2"
)

const version = "0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(compiler.ExitUnsupported)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "csema",
		Usage:    "semantic analysis for parsed C programs",
		Version:  version,
		Commands: []*cli.Command{checkCommand()},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "type check syntax tree files",
		ArgsUsage: "FILE.json... (- reads standard input)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load settings from YAML `FILE`"},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error"},
			&cli.StringFlag{Name: "color", Usage: "colour diagnostics: auto, always or never"},
			&cli.BoolFlag{Name: "dump-tree", Usage: "print the annotated tree of each passing file"},
			&cli.BoolFlag{Name: "dump-globals", Usage: "print the global symbols of each passing file"},
			&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Usage: "check up to `N` files at once"},
		},
		Action: runCheck,
	}
}

// configFrom loads the config file, if any, and applies flags given on the
// command line over it.
func configFrom(ctx *cli.Context) (compiler.Config, error) {
	cfg, err := compiler.LoadConfig(ctx.String("config"))
	if err != nil {
		return cfg, err
	}
	if ctx.IsSet("log-level") {
		cfg.LogLevel = ctx.String("log-level")
	}
	if ctx.IsSet("color") {
		cfg.Color = ctx.String("color")
	}
	if ctx.IsSet("dump-tree") {
		cfg.DumpTree = ctx.Bool("dump-tree")
	}
	if ctx.IsSet("dump-globals") {
		cfg.DumpGlobals = ctx.Bool("dump-globals")
	}
	if ctx.IsSet("jobs") {
		cfg.Jobs = ctx.Int("jobs")
	}
	return cfg, cfg.Validate()
}

func runCheck(ctx *cli.Context) error {
	cfg, err := configFrom(ctx)
	if err != nil {
		return cli.Exit(err, compiler.ExitUnsupported)
	}
	files := ctx.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("check: no input files", compiler.ExitUnsupported)
	}

	logger, err := cfg.NewLogger(ctx.App.ErrWriter)
	if err != nil {
		return cli.Exit(err, compiler.ExitUnsupported)
	}

	res := compiler.Check(compiler.Options{
		Config: cfg,
		Files:  files,
		Stdin:  os.Stdin,
		Logger: logger,
	})
	if err := compiler.Report(ctx.App.Writer, ctx.App.ErrWriter, cfg, res); err != nil {
		return cli.Exit(err, compiler.ExitUnsupported)
	}
	if code := res.ExitCode(); code != compiler.ExitOK {
		return cli.Exit("", code)
	}
	return nil
}
