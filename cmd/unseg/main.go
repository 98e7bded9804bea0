package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/revelaction/unseg/config"
	"github.com/revelaction/unseg/conll"
	"github.com/revelaction/unseg/file"
	"github.com/revelaction/unseg/reassemble"
	"github.com/revelaction/unseg/render"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// env is the state shared by all commands, prepared in the Before hook.
type env struct {
	ui  UI
	cfg *config.Config
	log *zap.Logger
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "unseg: %v\n", err)
}

func newApp(ui UI) *cli.App {
	e := &env{ui: ui}

	formatUsage := "output `FORMAT` (" + strings.Join(render.SupportedFormats(), ", ") + ")"
	repoFlag := func(name string) cli.Flag {
		return &cli.StringFlag{
			Name:     name,
			Aliases:  []string{"r"},
			EnvVars:  []string{"UNSEG_REPO"},
			Required: true,
			Usage:    "`REPO` directory or SQLite file",
		}
	}

	return &cli.App{
		Name:                 "unseg",
		Usage:                "links per-fragment dependency parses of a transcript into utterance trees",
		Version:              BuildTag + " (commit: " + BuildCommit + ")",
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		HideHelpCommand:      true,
		EnableBashCompletion: true,
		ArgsUsage:            "PATH",
		Before:               e.before,
		After:                e.after,
		// errors are reported by main
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.DefaultFormat, Usage: formatUsage},
			&cli.BoolFlag{Name: "stats", Usage: "write a summary of the reassembly to stderr"},
		},
		Action: e.unsegCommand,
		Commands: []*cli.Command{
			{
				Name:      "store",
				Usage:     "Reassembles transcript file(s) and stores the result in a repository",
				ArgsUsage: "PATH...",
				Action:    e.storeCommand,
				Flags: []cli.Flag{
					repoFlag("to"),
					&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "attach `LABEL` to the stored docs"},
				},
			},
			{
				Name:   "ls",
				Usage:  "Lists the docs of a repository",
				Action: e.lsCommand,
				Flags:  []cli.Flag{repoFlag("from")},
			},
			{
				Name:      "show",
				Usage:     "Prints a stored doc",
				ArgsUsage: "ID",
				Action:    e.showCommand,
				Flags: []cli.Flag{
					repoFlag("from"),
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.DefaultFormat, Usage: formatUsage},
				},
			},
			{
				Name:      "inspect",
				Usage:     "Browses a stored doc interactively",
				ArgsUsage: "ID",
				Action:    e.inspectCommand,
				Flags:     []cli.Flag{repoFlag("from")},
			},
			{
				Name:   "dumpconfig",
				Usage:  "Dumps either default or actual configuration (YAML)",
				Action: e.dumpConfigCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
			},
			{
				Name:   "version",
				Usage:  "Prints the version",
				Action: e.versionCommand,
			},
		},
	}
}

func (e *env) before(c *cli.Context) error {
	var err error

	configFile := c.String("config")
	if e.cfg, err = config.LoadConfiguration(configFile); err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if e.log, err = e.cfg.Logging.Prepare(e.ui.Err); err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}

	e.log.Debug("Program started", zap.Strings("args", c.Args().Slice()), zap.String("ver", BuildTag))
	if configFile == "" {
		e.log.Debug("Using defaults (no configuration file)")
	}
	return nil
}

func (e *env) after(c *cli.Context) error {
	if e.log != nil {
		e.log.Debug("Program ended")
		// stderr may not support sync
		_ = e.log.Sync()
	}
	return nil
}

// reader builds the parse and reassembly pipeline from the configuration.
func (e *env) reader() *file.Reader {
	p := conll.NewParser(e.log.Named("parse"))
	p.FillerLabels = e.cfg.Reassembly.FillerLabels
	p.DefaultTag = e.cfg.Reassembly.DefaultTag

	eng := reassemble.New(e.cfg.Reassembly.Options(), e.log.Named("reassemble"))
	return file.NewReader(p, eng)
}
