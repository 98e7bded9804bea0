package main

import (
	"errors"
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func (e *env) storeCommand(c *cli.Context) (err error) {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return errors.New("no PATH given")
	}

	to := c.String("to")
	repo, closeRepo, err := NewDocRepository(to, true)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeRepo())
	}()

	reader := e.reader()
	labels := c.StringSlice("label")

	progress := uiprogress.New()
	progress.SetOut(e.ui.Err)
	bar := progress.AddBar(len(paths))
	bar.AppendCompleted()
	bar.PrependElapsed()
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		if b.Current() == 0 {
			return ""
		}
		return paths[b.Current()-1]
	})

	progress.Start()
	defer progress.Stop()

	for _, path := range paths {
		doc, err := reader.ReadDoc(path)
		if err != nil {
			return err
		}
		doc.Labels = labels

		id, err := repo.Write(doc)
		if err != nil {
			return fmt.Errorf("failed to write doc %s: %w", path, err)
		}

		e.log.Debug("Stored doc", zap.String("path", path), zap.Int("id", id), zap.Int("segments", len(doc.Segments)))
		bar.Incr()
	}

	e.log.Info("Stored docs", zap.Int("count", len(paths)), zap.String("repo", to))
	return nil
}
