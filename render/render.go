package render

import (
	"fmt"
	"io"
	"strings"

	sent "github.com/revelaction/unseg/sentence"
)

const (
	DefaultFormat = "conll"

	// number of words shown per segment in the text format
	previewWords = 12
)

var (
	Yellow  = "\033[0;33m"
	Gray    = "\033[0;37m"
	Off     = "\033[0m"
	Grey256 = "\033[1;38;5;145m"
	// fragment roots
	Green256 = "\033[1;38;5;70m"
)

// Renderer writes reassembled segments.
type Renderer interface {
	Render(segments []sent.Segment) error
}

func SupportedFormats() []string {
	return []string{"conll", "json", "text"}
}

// New returns the renderer for format writing to w.
func New(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "conll":
		return NewCoNLLRenderer(w), nil
	case "json":
		return NewJSONRenderer(w), nil
	case "text":
		return NewTextRenderer(w), nil
	}
	return nil, fmt.Errorf("unknown format %q, allowed values are %s", format, strings.Join(SupportedFormats(), ", "))
}

// NextFormat returns the format following format in SupportedFormats order.
func NextFormat(format string) string {
	supported := SupportedFormats()
	for i, f := range supported {
		if f == format {
			return supported[(i+1)%len(supported)]
		}
	}
	return supported[0]
}

// TextRenderer writes one line per segment with its words, for reading.
type TextRenderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	// Full prints every word of the segment instead of a preview.
	Full bool
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w, HasPrefix: true}
}

func (r *TextRenderer) Render(segments []sent.Segment) error {
	for i, seg := range segments {
		if err := r.Segment(i, seg); err != nil {
			return err
		}
	}
	return nil
}

// Segment writes segment seg, numbered i.
func (r *TextRenderer) Segment(i int, seg sent.Segment) error {
	prefix := ""
	if r.HasPrefix {
		prefix = fmt.Sprintf("[%4d %3d:%4d] ✍  ", i, len(seg.Emissions), seg.Len())
		if r.HasColor {
			prefix = Grey256 + prefix + Off
		}
	}

	_, err := fmt.Fprintf(r.W, "%s%s\n", prefix, r.words(seg))
	return err
}

func (r *TextRenderer) NextPrefix() {
	r.HasPrefix = !r.HasPrefix
}

func (r *TextRenderer) words(seg sent.Segment) string {
	var words []string
	for _, e := range seg.Emissions {
		for _, t := range e.Fragment.Tokens {
			if !r.Full && len(words) == previewWords {
				return strings.Join(words, " ") + " …"
			}
			words = append(words, r.colorToken(t))
		}
	}
	return strings.Join(words, " ")
}

func (r *TextRenderer) colorToken(t sent.Token) string {
	if !r.HasColor {
		return t.Text
	}

	if t.IsRoot() {
		return Green256 + t.Text + Off
	}

	return t.Text
}

var _ Renderer = (*TextRenderer)(nil)
