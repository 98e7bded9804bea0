package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// set at build time with -ldflags "-X main.BuildTag=..."
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

func (e *env) versionCommand(c *cli.Context) error {
	_, err := fmt.Fprintf(e.ui.Out, "unseg version %s (commit: %s)\n", BuildTag, BuildCommit)
	return err
}
