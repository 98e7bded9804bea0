package sentence

import (
	"errors"
	"testing"
)

var fillerLabels = []string{"filler", "erased"}

func TestFragmentIsFiller(t *testing.T) {
	tests := []struct {
		name string
		deps []string
		want bool
	}{
		{"all filler", []string{"filler", "filler"}, true},
		{"filler and erased", []string{"erased", "filler"}, true},
		{"one syntactic", []string{"filler", "nsubj"}, false},
		{"none", []string{"root"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Fragment
			for i, d := range tt.deps {
				f.Tokens = append(f.Tokens, Token{Index: i, Dep: d, Head: NoHead})
			}
			if got := f.IsFiller(fillerLabels); got != tt.want {
				t.Errorf("IsFiller() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFragmentRoot(t *testing.T) {
	single := Fragment{Tokens: []Token{{Index: 0, Head: 3, Dep: "nsubj"}}}
	root, err := single.Root()
	if err != nil {
		t.Fatalf("single token: unexpected error %v", err)
	}
	if root.Index != 0 {
		t.Errorf("single token: expected index 0, got %d", root.Index)
	}

	two := Fragment{Tokens: []Token{{Index: 0, Head: 1}, {Index: 1, Head: NoHead}}}
	root, err = two.Root()
	if err != nil {
		t.Fatalf("two tokens: unexpected error %v", err)
	}
	if root.Index != 1 {
		t.Errorf("two tokens: expected root index 1, got %d", root.Index)
	}

	missing := Fragment{Tokens: []Token{{Index: 0, Head: 1}, {Index: 1, Head: 0}}}
	if _, err := missing.Root(); !errors.Is(err, ErrMissingRoot) {
		t.Errorf("missing root: expected ErrMissingRoot, got %v", err)
	}
}

func TestDocCounts(t *testing.T) {
	frag := func(n int) Fragment {
		f := Fragment{}
		for i := 0; i < n; i++ {
			f.Tokens = append(f.Tokens, Token{Index: i})
		}
		return f
	}

	doc := Doc{Segments: []Segment{
		{Emissions: []Emission{{Fragment: frag(2)}, {Fragment: frag(3)}}},
		{Emissions: []Emission{{Fragment: frag(1)}}},
	}}

	if got := doc.NumTokens(); got != 6 {
		t.Errorf("NumTokens() = %d, want 6", got)
	}
	if got := doc.NumFragments(); got != 3 {
		t.Errorf("NumFragments() = %d, want 3", got)
	}
	if got := doc.Segments[0].Len(); got != 5 {
		t.Errorf("Segment.Len() = %d, want 5", got)
	}
}
