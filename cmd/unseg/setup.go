package main

import (
	"fmt"
	"os"

	"github.com/revelaction/unseg/storage"
	"github.com/revelaction/unseg/storage/filesystem"
	"github.com/revelaction/unseg/storage/sqlite/zombiezen"
)

// NewDocRepository opens the repository at path: a directory is a
// filesystem store, anything else a SQLite file, created when create is set.
// The returned function releases the repository.
func NewDocRepository(path string, create bool) (storage.DocRepository, func() error, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		store, err := filesystem.NewDocStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil

	case err != nil && !create:
		return nil, nil, fmt.Errorf("repository not found: %s", path)
	}

	pool, err := zombiezen.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return zombiezen.NewDocStore(pool), pool.Close, nil
}
