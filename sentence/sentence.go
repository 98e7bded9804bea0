package sentence

import "errors"

// NoHead is the Head value of a token whose head lies outside its fragment.
const NoHead = -1

// ErrMissingRoot is returned when a fragment with more than one token has no
// token with Head == NoHead.
var ErrMissingRoot = errors.New("fragment has no root token")

// Token represents a word of a fragment, with POS, dependency and
// disfluency metadata.
type Token struct {
	// The index of the word in its original fragment, starting at 0.
	Index int    `json:"index"`
	Text  string `json:"text"`
	Pos   string `json:"pos"`

	// Index of the head token in the original fragment, or NoHead.
	Head int    `json:"head"`
	Dep  string `json:"dep"`

	// The disfluency tag, fields separated by "|". Its prefix identifies
	// the speaker turn.
	Tag string `json:"tag"`
}

// IsRoot reports whether the token's head lies outside its fragment.
func (t Token) IsRoot() bool {
	return t.Head == NoHead
}

// Fragment is a dependency tree over a contiguous span of the transcript, as
// it was originally parsed.
type Fragment struct {
	Tokens []Token `json:"tokens"`
}

// IsFiller reports whether every token carries one of the filler labels.
func (f Fragment) IsFiller(labels []string) bool {
	if len(f.Tokens) == 0 {
		return false
	}

	for _, t := range f.Tokens {
		if !contains(labels, t.Dep) {
			return false
		}
	}
	return true
}

// Root returns the token the fragment attaches through: its sole token, or
// the first token with Head == NoHead.
func (f Fragment) Root() (Token, error) {
	if len(f.Tokens) == 1 {
		return f.Tokens[0], nil
	}

	for _, t := range f.Tokens {
		if t.IsRoot() {
			return t, nil
		}
	}
	return Token{}, ErrMissingRoot
}

// NumRoots counts the tokens with Head == NoHead.
func (f Fragment) NumRoots() int {
	n := 0
	for _, t := range f.Tokens {
		if t.IsRoot() {
			n++
		}
	}
	return n
}

// Emission is a fragment placed in the document numbering.
type Emission struct {
	Fragment Fragment `json:"fragment"`

	// Offset added to the local indexes of the fragment.
	Offset int `json:"offset"`

	// Link is the 1-based document position root tokens attach to. Zero
	// means no attachment.
	Link int `json:"link"`

	// Number of filler fragments merged into Fragment.
	Absorbed int `json:"absorbed"`
}

// Segment is a run of emissions sharing one numbering space.
type Segment struct {
	Emissions []Emission `json:"emissions"`
}

// Len returns the number of tokens in the segment.
func (s Segment) Len() int {
	n := 0
	for _, e := range s.Emissions {
		n += len(e.Fragment.Tokens)
	}
	return n
}

// Doc is a reassembled transcript.
type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels   []string  `json:"labels,omitempty"`
	Segments []Segment `json:"segments"`
}

// NumTokens returns the number of tokens over all segments.
func (d Doc) NumTokens() int {
	n := 0
	for _, s := range d.Segments {
		n += s.Len()
	}
	return n
}

// NumFragments returns the number of emitted fragments over all segments.
func (d Doc) NumFragments() int {
	n := 0
	for _, s := range d.Segments {
		n += len(s.Emissions)
	}
	return n
}

func contains(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
