package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	sent "github.com/revelaction/unseg/sentence"
	"github.com/revelaction/unseg/storage"
)

const docExt = ".json"

// DocStore keeps one JSON file per doc, named after its id.
type DocStore struct {
	docDir string
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. docDir must exist.
func NewDocStore(docDir string) (*DocStore, error) {
	info, err := os.Stat(docDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", docDir)
	}

	return &DocStore{docDir: docDir}, nil
}

func (h *DocStore) List() ([]storage.DocMeta, error) {
	ids, err := h.ids()
	if err != nil {
		return nil, err
	}

	metas := make([]storage.DocMeta, 0, len(ids))
	for _, id := range ids {
		doc, err := h.Read(id)
		if err != nil {
			return nil, err
		}
		metas = append(metas, storage.NewDocMeta(doc))
	}
	return metas, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	doc, err := ReadDoc(h.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return sent.Doc{}, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return sent.Doc{}, err
	}

	doc.Id = id
	return doc, nil
}

func (h *DocStore) Write(doc sent.Doc) (int, error) {
	ids, err := h.ids()
	if err != nil {
		return 0, err
	}

	id := 0
	if len(ids) > 0 {
		id = ids[len(ids)-1] + 1
	}
	doc.Id = id

	data, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}

	// never overwrite an existing doc
	f, err := os.OpenFile(h.path(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("IO error: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return 0, fmt.Errorf("IO error: %w", err)
	}

	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("IO error: %w", err)
	}

	return id, nil
}

// ids returns the sorted ids of the docs in the directory.
func (h *DocStore) ids() ([]int, error) {
	files, err := os.ReadDir(h.docDir)
	if err != nil {
		return nil, err
	}

	var ids []int
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || filepath.Ext(name) != docExt {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(name, docExt))
		if err != nil || id < 0 {
			continue
		}
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids, nil
}

func (h *DocStore) path(id int) string {
	return filepath.Join(h.docDir, strconv.Itoa(id)+docExt)
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
