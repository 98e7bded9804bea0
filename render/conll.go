package render

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	sent "github.com/revelaction/unseg/sentence"
)

// CoNLLRenderer writes segments in the 10-field CoNLL-X layout, with head
// indexes translated to the segment numbering. Segments are separated by a
// blank line, the last one included.
type CoNLLRenderer struct {
	W io.Writer
}

func NewCoNLLRenderer(w io.Writer) *CoNLLRenderer {
	return &CoNLLRenderer{W: w}
}

func (r *CoNLLRenderer) Render(segments []sent.Segment) error {
	bw := bufio.NewWriter(r.W)
	for _, seg := range segments {
		for _, e := range seg.Emissions {
			for _, t := range e.Fragment.Tokens {
				bw.WriteString(TokenLine(t, e.Offset, e.Link))
				bw.WriteByte('\n')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// TokenLine formats a token of a fragment placed at offset. Root tokens print
// link.
func TokenLine(t sent.Token, offset, link int) string {
	head := link
	if !t.IsRoot() {
		head = offset + t.Head + 1
	}

	fields := []string{
		strconv.Itoa(t.Index + 1),
		t.Text,
		"-",
		t.Pos,
		t.Pos,
		t.Tag,
		strconv.Itoa(head),
		t.Dep,
		"-",
		"-",
	}
	return strings.Join(fields, "\t")
}

var _ Renderer = (*CoNLLRenderer)(nil)
