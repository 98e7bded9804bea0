package render

import (
	"encoding/json"
	"io"

	sent "github.com/revelaction/unseg/sentence"
)

// JSONRenderer writes segments as a JSON array to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the segments as a JSON array.
func (r *JSONRenderer) Render(segments []sent.Segment) error {
	if segments == nil {
		segments = []sent.Segment{}
	}
	return json.NewEncoder(r.W).Encode(segments)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
