// Package reassemble links independently parsed fragments of a transcript
// into segments sharing one token numbering.
//
// Fragments are consumed left to right. Filler fragments are merged into the
// fragment before them. Between two consecutive (possibly merged) fragments
// the speaker turn prefix of their root tags decides whether they belong to
// the same segment.
package reassemble

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/revelaction/unseg/conll"
	sent "github.com/revelaction/unseg/sentence"
)

// DefaultTurnPrefix is the number of disfluency tag characters identifying a
// speaker turn.
const DefaultTurnPrefix = 3

// State of the engine.
type State int

const (
	Start State = iota
	AccumulatingFiller
	BoundaryDecision
	SameSegment
	NewSegment
	FinalEmit
	Done
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case AccumulatingFiller:
		return "accumulating-filler"
	case BoundaryDecision:
		return "boundary-decision"
	case SameSegment:
		return "same-segment"
	case NewSegment:
		return "new-segment"
	case FinalEmit:
		return "final-emit"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Options struct {
	FillerLabels []string

	// Characters of the root tag compared at each boundary.
	TurnPrefix int

	// LinkRoots attaches the roots of a fragment to the root of the next
	// fragment in the same segment. When false every root prints head 0.
	LinkRoots bool
}

func DefaultOptions() Options {
	return Options{
		FillerLabels: conll.DefaultFillerLabels,
		TurnPrefix:   DefaultTurnPrefix,
		LinkRoots:    true,
	}
}

// Engine is not safe for concurrent use.
type Engine struct {
	opts Options
	log  *zap.Logger

	state  State
	frags  []sent.Fragment
	cursor int

	current    sent.Fragment
	currentNum int
	absorbed   int

	next    sent.Fragment
	nextNum int

	offset   int
	segment  sent.Segment
	segments []sent.Segment
}

func New(opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.TurnPrefix < 1 {
		opts.TurnPrefix = DefaultTurnPrefix
	}
	return &Engine{opts: opts, log: log}
}

// State returns the state the engine is in.
func (e *Engine) State() State {
	return e.state
}

// Run reassembles frags into segments. frags is not modified.
func (e *Engine) Run(frags []sent.Fragment) ([]sent.Segment, error) {
	e.reset(frags)

	for e.state != Done {
		if err := e.step(); err != nil {
			return nil, err
		}
	}

	e.log.Debug("Reassembled", zap.Int("fragments", len(frags)), zap.Int("segments", len(e.segments)))
	return e.segments, nil
}

func (e *Engine) reset(frags []sent.Fragment) {
	*e = Engine{opts: e.opts, log: e.log, state: Start, frags: frags}
}

func (e *Engine) step() error {
	switch e.state {
	case Start:
		if len(e.frags) == 0 {
			e.state = Done
			return nil
		}
		e.current = clone(e.frags[0])
		e.currentNum = 1
		e.cursor = 1
		e.advance()

	case AccumulatingFiller:
		if e.next.IsFiller(e.opts.FillerLabels) && e.cursor < len(e.frags) {
			e.log.Debug("Absorbing filler", zap.Int("fragment", e.nextNum), zap.Int("into", e.currentNum), zap.Int("tokens", len(e.next.Tokens)))
			e.current.Tokens = append(e.current.Tokens, e.next.Tokens...)
			e.absorbed++
			e.take()
			return nil
		}
		e.state = BoundaryDecision

	case BoundaryDecision:
		return e.decide()

	case SameSegment:
		e.offset += len(e.current.Tokens)
		e.shift()
		e.advance()

	case NewSegment:
		e.closeSegment()
		e.offset = 0
		e.shift()
		e.advance()

	case FinalEmit:
		e.emit(0)
		e.closeSegment()
		e.state = Done
	}

	return nil
}

func (e *Engine) decide() error {
	curRoot, err := e.current.Root()
	if err != nil {
		return fmt.Errorf("fragment %d: %w", e.currentNum, err)
	}
	nextRoot, err := e.next.Root()
	if err != nil {
		return fmt.Errorf("fragment %d: %w", e.nextNum, err)
	}

	curTurn := turn(curRoot.Tag, e.opts.TurnPrefix)
	nextTurn := turn(nextRoot.Tag, e.opts.TurnPrefix)

	if curTurn != nextTurn {
		e.log.Debug("Segment boundary", zap.Int("fragment", e.currentNum), zap.String("turn", curTurn), zap.String("next", nextTurn), zap.Int("offset", e.offset))
		e.emit(0)
		e.state = NewSegment
		return nil
	}

	link := 0
	if e.opts.LinkRoots {
		// next fragment offset plus its root index, 1-based
		link = e.offset + len(e.current.Tokens) + nextRoot.Index + 1
	}

	e.log.Debug("Same segment", zap.Int("fragment", e.currentNum), zap.String("turn", curTurn), zap.Int("offset", e.offset), zap.Int("link", link))
	e.emit(link)
	e.state = SameSegment
	return nil
}

// advance moves to the next fragment, or to the final emission when there is
// none.
func (e *Engine) advance() {
	if e.cursor < len(e.frags) {
		e.take()
		e.state = AccumulatingFiller
		return
	}
	e.state = FinalEmit
}

func (e *Engine) take() {
	e.next = e.frags[e.cursor]
	e.cursor++
	e.nextNum = e.cursor
}

func (e *Engine) shift() {
	e.current = clone(e.next)
	e.currentNum = e.nextNum
	e.absorbed = 0
}

func (e *Engine) emit(link int) {
	e.segment.Emissions = append(e.segment.Emissions, sent.Emission{
		Fragment: e.current,
		Offset:   e.offset,
		Link:     link,
		Absorbed: e.absorbed,
	})
}

func (e *Engine) closeSegment() {
	e.segments = append(e.segments, e.segment)
	e.segment = sent.Segment{}
}

func clone(f sent.Fragment) sent.Fragment {
	return sent.Fragment{Tokens: slices.Clone(f.Tokens)}
}

// turn returns the speaker turn prefix of a disfluency tag.
func turn(tag string, n int) string {
	if len(tag) < n {
		return tag
	}
	return tag[:n]
}
