package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/revelaction/unseg/inspect"
	"github.com/revelaction/unseg/render"
	sent "github.com/revelaction/unseg/sentence"
)

func (e *env) lsCommand(c *cli.Context) (err error) {
	repo, closeRepo, err := NewDocRepository(c.String("from"), false)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeRepo())
	}()

	metas, err := repo.List()
	if err != nil {
		return err
	}

	for _, m := range metas {
		labels := ""
		if len(m.Labels) > 0 {
			labels = " 🔖 " + strings.Join(m.Labels, ",")
		}
		fmt.Fprintf(e.ui.Out, "📖 %d %s %d segments %d tokens%s\n", m.Id, m.Title, m.NumSegments, m.NumTokens, labels)
	}
	return nil
}

func (e *env) showCommand(c *cli.Context) (err error) {
	r, err := render.New(c.String("format"), e.ui.Out)
	if err != nil {
		return err
	}

	doc, err := e.storedDoc(c)
	if err != nil {
		return err
	}

	return r.Render(doc.Segments)
}

func (e *env) inspectCommand(c *cli.Context) error {
	doc, err := e.storedDoc(c)
	if err != nil {
		return err
	}

	return inspect.NewHandler(doc, e.ui.Out).Run()
}

// storedDoc reads the doc whose id is the sole argument from the --from
// repository.
func (e *env) storedDoc(c *cli.Context) (doc sent.Doc, err error) {
	if c.NArg() != 1 {
		return sent.Doc{}, errors.New("expected exactly one ID argument")
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return sent.Doc{}, fmt.Errorf("invalid ID: %w", err)
	}

	repo, closeRepo, err := NewDocRepository(c.String("from"), false)
	if err != nil {
		return sent.Doc{}, err
	}
	defer func() {
		err = multierr.Append(err, closeRepo())
	}()

	return repo.Read(id)
}
