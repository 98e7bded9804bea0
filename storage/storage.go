package storage

import (
	"errors"

	sent "github.com/revelaction/unseg/sentence"
)

// ErrNotFound is returned by Read for an unknown doc id.
var ErrNotFound = errors.New("doc not found")

// DocMeta describes a stored doc without its tokens.
type DocMeta struct {
	Id          int
	Title       string
	Labels      []string
	NumSegments int
	NumTokens   int
}

// NewDocMeta summarizes doc.
func NewDocMeta(doc sent.Doc) DocMeta {
	return DocMeta{
		Id:          doc.Id,
		Title:       doc.Title,
		Labels:      doc.Labels,
		NumSegments: len(doc.Segments),
		NumTokens:   doc.NumTokens(),
	}
}

// DocReader defines read operations for reassembled document storage
type DocReader interface {
	// List returns the metadata of all documents, ordered by id.
	List() ([]DocMeta, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)
}

// DocWriter defines write operations for reassembled document storage
type DocWriter interface {
	// Write persists a document and its segments, and returns its new id.
	// The Id field of doc is ignored.
	Write(doc sent.Doc) (int, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}
