package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/unseg/config"
)

func (e *env) dumpConfigCommand(c *cli.Context) error {
	var (
		data []byte
		err  error
	)
	if c.Bool("default") {
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(e.cfg)
	}
	if err != nil {
		return err
	}

	_, err = e.ui.Out.Write(data)
	return err
}
