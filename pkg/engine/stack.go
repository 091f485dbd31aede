package engine

import "github.com/tetrachess/engine/pkg/board"

// stackFrame holds one ply's worth of search bookkeeping: killers, the
// tt_pv flag, the move currently being searched from this ply (the move
// that led here is in the frame one ply below), and state consumed by
// reduction/extension decisions.
type stackFrame struct {
	killers     [2]board.Move
	ttPV        bool
	moveCount   int
	contHistory *pieceToHistory // keyed by (in_check, is_capture) and the move made from this frame
	inCheck     bool
	reduction   int
	currentMove board.Move
	isNullMove  bool
	rootDepth   int
	staticEval  Score
}

// searchStack holds stackSentinel extra frames below ply 0 so code can
// unconditionally read ss-1..ss-5 without bounds checks. Index with
// at(ply); the sentinel offset is applied internally.
type searchStack struct {
	frames [stackSize]stackFrame
}

func newSearchStack() *searchStack {
	return &searchStack{}
}

// at returns the frame for ply, which may be negative (down into the
// sentinel region) or up to ply+2 (for killer-clearing lookahead).
func (s *searchStack) at(ply int) *stackFrame {
	return &s.frames[stackSentinel+ply]
}
