package engine

import (
	"time"

	"github.com/tetrachess/engine/pkg/board"
)

// Player is the engine's top-level handle: it owns the long-lived
// transposition table and the published PV (on a successful MakeMove,
// the winning worker's chain replaces it), and exposes MakeMove as the
// only entry point an outer CLI/UCI layer (out of scope here) calls.
type Player struct {
	Options PlayerOptions

	tt   *TranspositionTable
	eval *Evaluator
	pv   *PVInfo
}

// NewPlayer builds a Player with a fresh transposition table sized from
// opts and a precomputed Evaluator, both allocated once at construction
// rather than per search.
func NewPlayer(opts PlayerOptions) *Player {
	return &Player{
		Options: opts,
		tt:      NewTranspositionTable(opts.TranspositionTableSize),
		eval:    NewEvaluator(),
		pv:      &PVInfo{},
	}
}

// Clear resets the transposition table and the published PV, used
// between unrelated games.
func (p *Player) Clear() {
	p.tt.Clear()
	p.pv = &PVInfo{}
}

// MakeMove is the coordinator entry point: it derives a deadline from
// timeLimit (zero means unbounded, stopped only by maxDepth or a proven
// mate), clones the board per worker, and returns the winning worker's
// result plus accumulated telemetry. A maxDepth of zero falls back to
// Options.MaxSearchDepth (itself zero for no limit).
func (p *Player) MakeMove(cloneBoard func() board.Board, timeLimit time.Duration, maxDepth int) MakeMoveResult {
	if maxDepth == 0 {
		maxDepth = p.Options.MaxSearchDepth
	}
	var deadline time.Time
	if timeLimit > 0 {
		deadline = time.Now().Add(timeLimit)
	}

	return MakeMove(cloneBoard, p.pv, p.Options, p.tt, p.eval, deadline, maxDepth)
}

// PV returns the engine's currently published principal variation.
func (p *Player) PV() []board.Move {
	return p.pv.Moves()
}
