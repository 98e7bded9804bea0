package stat

import (
	"fmt"
	"io"
	"maps"
	"slices"

	sent "github.com/revelaction/unseg/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSegments  int
	NumFragments int
	// filler fragments merged into a preceding fragment
	NumFiller            int
	NumTokens            int
	TokensPerSegmentMean int
	TokensPerSegmentDis  map[int]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSegmentDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the counts of doc. It can be called for several docs.
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumSegments += len(doc.Segments)
	for _, seg := range doc.Segments {
		n := seg.Len()
		h.stats.NumTokens += n
		h.stats.TokensPerSegmentDis[n]++

		for _, e := range seg.Emissions {
			h.stats.NumFragments += 1 + e.Absorbed
			h.stats.NumFiller += e.Absorbed
		}
	}

	if h.stats.NumSegments > 0 {
		h.stats.TokensPerSegmentMean = h.stats.NumTokens / h.stats.NumSegments
	}
}

// Write prints the summary line followed by the number of segments per
// segment size, smallest size first.
func (s Stats) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Num segments %d, fragments %d (filler %d), tokens %d, tokens per segment %d\n",
		s.NumSegments, s.NumFragments, s.NumFiller, s.NumTokens, s.TokensPerSegmentMean)
	if err != nil {
		return err
	}

	for _, size := range slices.Sorted(maps.Keys(s.TokensPerSegmentDis)) {
		if _, err := fmt.Fprintf(w, "%4d tokens: %d\n", size, s.TokensPerSegmentDis[size]); err != nil {
			return err
		}
	}
	return nil
}
