// Package inspect is an interactive browser over a reassembled doc.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/unseg/render"
	sent "github.com/revelaction/unseg/sentence"
	"github.com/revelaction/unseg/stat"
)

var errQuit = errors.New("quit")

var commands = []prompt.Suggest{
	{Text: "segments", Description: "list the segments"},
	{Text: "segment", Description: "print segment N"},
	{Text: "stats", Description: "doc statistics"},
	{Text: "format", Description: "switch the segment format"},
	{Text: "help", Description: "show the commands"},
	{Text: "quit", Description: "leave"},
}

type Handler struct {
	Doc sent.Doc
	W   io.Writer

	// Format of the segment command, one of render.SupportedFormats
	Format string

	text *render.TextRenderer
}

func NewHandler(doc sent.Doc, w io.Writer) *Handler {
	text := render.NewTextRenderer(w)
	text.HasColor = true
	return &Handler{
		Doc:    doc,
		W:      w,
		Format: render.DefaultFormat,
		text:   text,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintf(h.W, "📖 %d %s: %d segments. Ctrl+F: next Format, Ctrl+X: Toggle prefix, 🔧 quit\n", h.Doc.Id, h.Doc.Title, len(h.Doc.Segments))

	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("unseg inspect"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.nextFormat()
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.text.NextPrefix()
					fmt.Fprintf(h.W, "Prefix set to %t\n", h.text.HasPrefix)
				}}),
		)

		history = append(history, in)

		err := h.Exec(in)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(h.W, "✍  %v\n", err)
		}
	}
}

// Exec runs one prompt line.
func (h *Handler) Exec(in string) error {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "quit", "exit":
		return errQuit

	case "segments":
		return h.text.Render(h.Doc.Segments)

	case "segment":
		if len(fields) != 2 {
			return errors.New("usage: segment N")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("segment number: %w", err)
		}
		if n < 0 || n >= len(h.Doc.Segments) {
			return fmt.Errorf("segment %d out of bounds (doc has %d segments)", n, len(h.Doc.Segments))
		}
		r, err := render.New(h.Format, h.W)
		if err != nil {
			return err
		}
		return r.Render(h.Doc.Segments[n : n+1])

	case "stats":
		hdl := stat.NewHandler()
		hdl.Aggregate(h.Doc)
		return hdl.Get().Write(h.W)

	case "format":
		h.nextFormat()
		return nil

	case "help":
		for _, c := range commands {
			fmt.Fprintf(h.W, "%-10s %s\n", c.Text, c.Description)
		}
		return nil
	}

	return fmt.Errorf("unknown command %q", fields[0])
}

func (h *Handler) nextFormat() {
	h.Format = render.NextFormat(h.Format)
	fmt.Fprintf(h.W, "Format set to: %s\n", h.Format)
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return suggest(in.TextBeforeCursor())
}

func suggest(before string) []prompt.Suggest {
	if before == "" || strings.Contains(before, " ") {
		return []prompt.Suggest{}
	}
	return prompt.FilterHasPrefix(commands, before, false)
}
