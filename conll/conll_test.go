package conll

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	sent "github.com/revelaction/unseg/sentence"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return NewParser(zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller())))
}

func TestParseTokenExtended(t *testing.T) {
	line := "2\tdog\t-\tNN\tNN\tTRN|x|0|-|-\t3\tnsubj\t-\t-"
	tok, err := ParseToken(1, line, DefaultTag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := sent.Token{Index: 1, Text: "dog", Pos: "NN", Head: 2, Dep: "nsubj", Tag: "TRN|x|0|-|-"}
	if tok != want {
		t.Fatalf("expected %+v, got %+v", want, tok)
	}
}

func TestParseTokenExtendedNoHead(t *testing.T) {
	line := "1 barks - VBZ VBZ TRN|x 0 root - -"
	tok, err := ParseToken(0, line, DefaultTag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Head != sent.NoHead {
		t.Errorf("expected head %d, got %d", sent.NoHead, tok.Head)
	}
}

func TestParseTokenReduced(t *testing.T) {
	tok, err := ParseToken(0, "uh UH -1 filler", DefaultTag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := sent.Token{Index: 0, Text: "uh", Pos: "UH", Head: -1, Dep: "filler", Tag: DefaultTag}
	if tok != want {
		t.Fatalf("expected %+v, got %+v", want, tok)
	}
}

func TestParseTokenErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"three fields", "a b c", ErrFieldCount},
		{"five fields", "a b 0 d e", ErrFieldCount},
		{"reduced head not a number", "a NN x dep", ErrBadHead},
		{"extended head not a number", "1 a - NN NN T _ dep - -", ErrBadHead},
		{"head below sentinel", "a NN -2 dep", ErrBadHead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(0, tt.line, DefaultTag)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseFragments(t *testing.T) {
	text := strings.Join([]string{
		"the DT 1 det",
		"dog NN -1 root",
		"",
		"uh UH -1 filler",
		"",
		"",
		"barks VBZ -1 root",
		"",
	}, "\n")

	frags, err := newTestParser(t).Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(frags))
	}

	if len(frags[0].Tokens) != 2 || frags[0].Tokens[1].Index != 1 {
		t.Errorf("unexpected first fragment %+v", frags[0])
	}

	if !frags[1].IsFiller(DefaultFillerLabels) {
		t.Errorf("expected second fragment to be filler")
	}

	if frags[2].Tokens[0].Text != "barks" {
		t.Errorf("expected third fragment to start with barks, got %q", frags[2].Tokens[0].Text)
	}
}

func TestParseCRLF(t *testing.T) {
	text := "the DT 1 det\r\ndog NN -1 root\r\n\r\nbarks VBZ -1 root\r\n"
	frags, err := newTestParser(t).Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
}

func TestParseWhitespaceSeparator(t *testing.T) {
	for _, sep := range []string{" ", "\t", " \t "} {
		text := "a\tDT\t1\tdet\nb\tNN\t-1\troot\n" + sep + "\nc\tVB\t-1\troot\n"
		frags, err := newTestParser(t).Parse(text)
		if err != nil {
			t.Fatalf("%q: %v", sep, err)
		}
		if len(frags) != 2 {
			t.Fatalf("%q: expected 2 fragments, got %d", sep, len(frags))
		}
		if len(frags[0].Tokens) != 2 || len(frags[1].Tokens) != 1 {
			t.Errorf("%q: unexpected token counts %d, %d", sep, len(frags[0].Tokens), len(frags[1].Tokens))
		}
		if frags[1].Tokens[0].Index != 0 {
			t.Errorf("%q: expected second fragment to restart indexes, got %d", sep, frags[1].Tokens[0].Index)
		}
	}
}

func TestParseWhitespaceSeparatorLine(t *testing.T) {
	text := "ok NN -1 root\n  \nx NN 1 dep\ny NN 0 dep\n"
	_, err := newTestParser(t).Parse(text)

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a *ParseError, got %v", err)
	}
	if pe.Fragment != 2 || pe.Line != 3 {
		t.Errorf("expected fragment 2 line 3, got fragment %d line %d", pe.Fragment, pe.Line)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "  \n\n\t\n"} {
		frags, err := newTestParser(t).Parse(text)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", text, err)
		}
		if len(frags) != 0 {
			t.Fatalf("%q: expected no fragments, got %d", text, len(frags))
		}
	}
}

func TestParseMissingRoot(t *testing.T) {
	text := "the DT 1 det\ndog NN 0 nsubj\n"
	frags, err := newTestParser(t).Parse(text)
	if !errors.Is(err, sent.ErrMissingRoot) {
		t.Fatalf("expected ErrMissingRoot, got %v", err)
	}
	if frags != nil {
		t.Fatalf("expected no fragments on error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a *ParseError, got %T", err)
	}
	if pe.Fragment != 1 || pe.Line != 1 {
		t.Errorf("expected fragment 1 line 1, got fragment %d line %d", pe.Fragment, pe.Line)
	}
}

func TestParseFillerWithoutRoot(t *testing.T) {
	text := "uh UH 1 filler\num UH 0 filler\n"
	frags, err := newTestParser(t).Parse(text)
	if err != nil {
		t.Fatalf("filler fragments are not root checked, got %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(frags))
	}
}

func TestParseHeadOutOfRange(t *testing.T) {
	text := "the DT 5 det\ndog NN -1 root\n"
	_, err := newTestParser(t).Parse(text)
	if !errors.Is(err, ErrBadHead) {
		t.Fatalf("expected ErrBadHead, got %v", err)
	}
}

func TestParseReportsAllErrors(t *testing.T) {
	text := strings.Join([]string{
		"a b c",
		"",
		"ok NN -1 root",
		"",
		"x NN 1 dep",
		"y NN 0 dep",
		"",
		"too few",
	}, "\n")

	_, err := newTestParser(t).Parse(text)
	if err == nil {
		t.Fatalf("expected error")
	}

	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), err)
	}

	lines := []int{1, 5, 8}
	for i, e := range errs {
		var pe *ParseError
		if !errors.As(e, &pe) {
			t.Fatalf("error %d: expected *ParseError, got %T", i, e)
		}
		if pe.Line != lines[i] {
			t.Errorf("error %d: expected line %d, got %d", i, lines[i], pe.Line)
		}
	}
}
