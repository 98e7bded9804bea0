package main

import (
	"errors"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/revelaction/unseg/render"
	"github.com/revelaction/unseg/stat"
)

// unsegCommand reassembles the file given as sole argument and writes it to
// the output.
func (e *env) unsegCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one PATH argument, see --help")
	}
	path := c.Args().First()

	r, err := render.New(c.String("format"), e.ui.Out)
	if err != nil {
		return err
	}

	doc, err := e.reader().ReadDoc(path)
	if err != nil {
		return err
	}

	e.log.Debug("Reassembled doc", zap.String("path", path), zap.Int("segments", len(doc.Segments)), zap.Int("tokens", doc.NumTokens()))

	if err := r.Render(doc.Segments); err != nil {
		return err
	}

	if c.Bool("stats") {
		hdl := stat.NewHandler()
		hdl.Aggregate(doc)
		return hdl.Get().Write(e.ui.Err)
	}

	return nil
}
