// Package conll reads segmented dependency parses: blank-line separated
// fragments of token lines in the 10-field CoNLL-X layout or the reduced
// 4-field layout (word, pos, head, label).
package conll

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	sent "github.com/revelaction/unseg/sentence"
)

const (
	// DefaultTag is the disfluency tag of tokens read from 4-field lines.
	DefaultTag = "A1|-|0|-|-"

	fieldsExtended = 10
	fieldsReduced  = 4
)

// DefaultFillerLabels are the dependency labels of disfluency material.
var DefaultFillerLabels = []string{"filler", "erased"}

var (
	ErrFieldCount = errors.New("line has neither 10 nor 4 fields")
	ErrBadHead    = errors.New("invalid head")
)

// ParseError locates a problem in the input.
type ParseError struct {
	// 1-based fragment number, counting non-empty blocks only
	Fragment int
	// 1-based line number in the input text
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("fragment %d, line %d: %v", e.Fragment, e.Line, e.Err)
	}
	return fmt.Sprintf("fragment %d: %v", e.Fragment, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser turns raw text into fragments.
type Parser struct {
	FillerLabels []string
	DefaultTag   string

	log *zap.Logger
}

// NewParser returns a Parser with the default filler labels and tag.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{
		FillerLabels: DefaultFillerLabels,
		DefaultTag:   DefaultTag,
		log:          log,
	}
}

// Parse splits text on blank lines and parses every non-empty block into a
// fragment. A line holding only whitespace is a blank line. Every problem
// found is reported; when there is any, no fragments are returned.
func (p *Parser) Parse(text string) ([]sent.Fragment, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var (
		fragments []sent.Fragment
		errs      error
	)

	num := 0
	for _, b := range blocks(text) {
		num++
		frag, err := p.parseFragment(num, b.start, b.lines)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		fragments = append(fragments, frag)
	}

	if errs != nil {
		return nil, errs
	}

	p.log.Debug("Parsed fragments", zap.Int("fragments", len(fragments)))
	return fragments, nil
}

// block is a run of non-blank lines. start is the 1-based line number of its
// first line.
type block struct {
	start int
	lines []string
}

func blocks(text string) []block {
	var bs []block
	inBlock := false

	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			inBlock = false
			continue
		}
		if !inBlock {
			bs = append(bs, block{start: i + 1})
			inBlock = true
		}
		bs[len(bs)-1].lines = append(bs[len(bs)-1].lines, line)
	}

	return bs
}

func (p *Parser) parseFragment(num, start int, lines []string) (sent.Fragment, error) {
	var frag sent.Fragment
	var errs error

	for i, line := range lines {
		tok, err := ParseToken(len(frag.Tokens), line, p.DefaultTag)
		if err != nil {
			errs = multierr.Append(errs, &ParseError{Fragment: num, Line: start + i, Err: err})
			continue
		}
		frag.Tokens = append(frag.Tokens, tok)
	}

	if errs != nil {
		return sent.Fragment{}, errs
	}

	for _, tok := range frag.Tokens {
		if tok.Head >= len(frag.Tokens) {
			return sent.Fragment{}, &ParseError{Fragment: num, Err: fmt.Errorf("%w: token %d points to %d in a fragment of %d tokens", ErrBadHead, tok.Index, tok.Head, len(frag.Tokens))}
		}
	}

	// Filler fragments carry no root of their own, they are checked only if
	// something needs to attach to them.
	if frag.IsFiller(p.FillerLabels) {
		return frag, nil
	}

	if _, err := frag.Root(); err != nil {
		return sent.Fragment{}, &ParseError{Fragment: num, Line: start, Err: err}
	}

	if n := frag.NumRoots(); n > 1 {
		p.log.Warn("Fragment has more than one root, using the first", zap.Int("fragment", num), zap.Int("line", start), zap.Int("roots", n))
	}

	return frag, nil
}

// ParseToken parses one token line. idx is the position of the token in its
// fragment.
func ParseToken(idx int, line, defaultTag string) (sent.Token, error) {
	fields := strings.Fields(line)

	tok := sent.Token{Index: idx}

	switch len(fields) {
	case fieldsExtended:
		head, err := strconv.Atoi(fields[6])
		if err != nil {
			return sent.Token{}, fmt.Errorf("%w %q", ErrBadHead, fields[6])
		}
		tok.Text = fields[1]
		tok.Pos = fields[3]
		tok.Tag = fields[5]
		// 1-based in the file, 0 meaning no head
		tok.Head = head - 1
		tok.Dep = fields[7]

	case fieldsReduced:
		head, err := strconv.Atoi(fields[2])
		if err != nil {
			return sent.Token{}, fmt.Errorf("%w %q", ErrBadHead, fields[2])
		}
		tok.Text = fields[0]
		tok.Pos = fields[1]
		tok.Head = head
		tok.Dep = fields[3]
		tok.Tag = defaultTag

	default:
		return sent.Token{}, fmt.Errorf("%w: got %d", ErrFieldCount, len(fields))
	}

	if tok.Head < sent.NoHead {
		return sent.Token{}, fmt.Errorf("%w %d", ErrBadHead, tok.Head)
	}

	return tok, nil
}
