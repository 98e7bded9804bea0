package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/revelaction/unseg/conll"
	"github.com/revelaction/unseg/reassemble"
	sent "github.com/revelaction/unseg/sentence"
)

// Reader turns transcript files into reassembled docs.
type Reader struct {
	Parser *conll.Parser
	Engine *reassemble.Engine
}

func NewReader(p *conll.Parser, e *reassemble.Engine) *Reader {
	return &Reader{Parser: p, Engine: e}
}

// ReadDoc reads the segmented parse at path. The doc title is the file base
// name.
func (r *Reader) ReadDoc(path string) (sent.Doc, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	return r.Doc(filepath.Base(path), string(b))
}

// Doc parses and reassembles text.
func (r *Reader) Doc(title, text string) (sent.Doc, error) {
	frags, err := r.Parser.Parse(text)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("%s: %w", title, err)
	}

	segments, err := r.Engine.Run(frags)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("%s: %w", title, err)
	}

	return sent.Doc{Title: title, Segments: segments}, nil
}
